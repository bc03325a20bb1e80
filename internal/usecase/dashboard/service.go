package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DashboardService computes the dashboard summary of a user
type DashboardService struct {
	TransactionRepo domain.TransactionRepository
	InvestmentRepo  domain.InvestmentRepository
	Categories      *domain.CategoryRegistry
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	transactionRepo domain.TransactionRepository,
	investmentRepo domain.InvestmentRepository,
	categories *domain.CategoryRegistry,
) *DashboardService {
	return &DashboardService{
		TransactionRepo: transactionRepo,
		InvestmentRepo:  investmentRepo,
		Categories:      categories,
	}
}

// GetDashboardStats computes the dashboard summary of ownerID.
// Logic:
//   - Income/Expense: transaction totals grouped by type, 0 when absent
//   - Recent: the 5 newest transactions
//   - Investments: totals grouped by category, grand total is their sum
//
// The reads run concurrently. If any of them fails the whole call fails
// with ErrAggregationFailed and no partial result is returned.
func (s *DashboardService) GetDashboardStats(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardStats, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	var (
		byType     []domain.GroupTotal
		recent     []*domain.Transaction
		byCategory []domain.GroupTotal
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.TransactionRepo.TotalsByType(gctx, ownerID, domain.DateRange{})
		if err != nil {
			return fmt.Errorf("failed to total transactions by type: %w", err)
		}
		byType = totals
		return nil
	})

	g.Go(func() error {
		txs, err := s.TransactionRepo.List(gctx, ownerID, domain.ListFilter{Limit: domain.RecentTransactionsLimit})
		if err != nil {
			return fmt.Errorf("failed to list recent transactions: %w", err)
		}
		recent = txs
		return nil
	})

	g.Go(func() error {
		totals, err := s.InvestmentRepo.TotalsByCategory(gctx, ownerID, domain.DateRange{})
		if err != nil {
			return fmt.Errorf("failed to total investments by category: %w", err)
		}
		byCategory = totals
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAggregationFailed, err)
	}

	stats := &domain.DashboardStats{
		Transactions: domain.TransactionSummary{
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Recent:  recent,
		},
		Investments: domain.InvestmentSummary{
			Total:      decimal.Zero,
			ByCategory: make([]domain.CategoryTotal, 0, len(byCategory)),
		},
	}
	if stats.Transactions.Recent == nil {
		stats.Transactions.Recent = []*domain.Transaction{}
	}
	if len(stats.Transactions.Recent) > domain.RecentTransactionsLimit {
		stats.Transactions.Recent = stats.Transactions.Recent[:domain.RecentTransactionsLimit]
	}

	for _, group := range byType {
		switch domain.TransactionType(group.Key) {
		case domain.TransactionTypeIncome:
			stats.Transactions.Income = stats.Transactions.Income.Add(group.Total)
		case domain.TransactionTypeExpense:
			stats.Transactions.Expense = stats.Transactions.Expense.Add(group.Total)
		}
	}

	for _, group := range byCategory {
		stats.Investments.Total = stats.Investments.Total.Add(group.Total)
		if group.Key == "" {
			continue
		}

		name := group.Key
		if c, ok := s.Categories.Lookup(domain.TransactionTypeInvestment, group.Key); ok {
			name = c.Name
		}
		stats.Investments.ByCategory = append(stats.Investments.ByCategory, domain.CategoryTotal{
			Category: group.Key,
			Name:     name,
			Total:    group.Total,
		})
	}

	// Largest holdings first; the id breaks ties so repeated calls agree
	sort.SliceStable(stats.Investments.ByCategory, func(i, j int) bool {
		a, b := stats.Investments.ByCategory[i], stats.Investments.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})

	return stats, nil
}
