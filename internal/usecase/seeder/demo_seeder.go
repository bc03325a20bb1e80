package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
	"github.com/simaogato/fintrack-backend/internal/usecase/investment"
	"github.com/simaogato/fintrack-backend/internal/usecase/transaction"
)

// DemoTransaction is a sample transaction dated DaysAgo days before seeding
type DemoTransaction struct {
	Type        domain.TransactionType
	Amount      string
	Category    string
	Description string
	DaysAgo     int
}

// DemoInvestment is a sample investment dated DaysAgo days before seeding
type DemoInvestment struct {
	Name     string
	Amount   string
	Category string
	Notes    string
	DaysAgo  int
}

// DefaultDemoTransactions is the sample ledger of the demo account
var DefaultDemoTransactions = []DemoTransaction{
	{domain.TransactionTypeIncome, "5000", "salary", "Monthly salary", 20},
	{domain.TransactionTypeIncome, "750", "freelance", "Website project", 9},
	{domain.TransactionTypeExpense, "1500", "rent", "Apartment rent", 19},
	{domain.TransactionTypeExpense, "320.45", "groceries", "Supermarket", 6},
	{domain.TransactionTypeExpense, "85.20", "dining", "Dinner out", 3},
	{domain.TransactionTypeExpense, "120", "utilities", "Electricity and water", 2},
}

// DefaultDemoInvestments is the sample portfolio of the demo account
var DefaultDemoInvestments = []DemoInvestment{
	{"World index ETF", "1000", "stocks", "Monthly contribution", 15},
	{"Gold coins", "250", "gold", "", 30},
}

// DemoSeeder creates a demo account with sample records
type DemoSeeder struct {
	UserRepo           domain.UserRepository
	AuthService        *auth.AuthService
	TransactionService *transaction.TransactionService
	InvestmentService  *investment.InvestmentService
	Transactions       []DemoTransaction
	Investments        []DemoInvestment
	Now                func() time.Time
}

// NewDemoSeeder creates a new DemoSeeder instance with the default sample data
func NewDemoSeeder(
	userRepo domain.UserRepository,
	authService *auth.AuthService,
	transactionService *transaction.TransactionService,
	investmentService *investment.InvestmentService,
) *DemoSeeder {
	return &DemoSeeder{
		UserRepo:           userRepo,
		AuthService:        authService,
		TransactionService: transactionService,
		InvestmentService:  investmentService,
		Transactions:       DefaultDemoTransactions,
		Investments:        DefaultDemoInvestments,
		Now:                time.Now,
	}
}

// Seed ensures the demo account exists.
// If the email is already registered nothing is changed and false is returned.
func (s *DemoSeeder) Seed(ctx context.Context, email, password string) (bool, error) {
	// Try to get the user by email
	_, err := s.UserRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("failed to look up demo user: %w", err)
	}

	// User doesn't exist, create it together with its records
	session, err := s.AuthService.Register(ctx, auth.RegisterInput{
		Email:    email,
		Password: password,
		Name:     "Demo User",
	})
	if err != nil {
		return false, fmt.Errorf("failed to register demo user: %w", err)
	}
	ownerID := session.User.ID
	now := s.Now().UTC()

	for _, t := range s.Transactions {
		date := now.AddDate(0, 0, -t.DaysAgo)
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return false, fmt.Errorf("invalid demo amount %q: %w", t.Amount, err)
		}
		if _, err := s.TransactionService.Create(ctx, ownerID, transaction.CreateTransactionInput{
			Type:        t.Type,
			Amount:      amount,
			Category:    t.Category,
			Description: t.Description,
			Date:        &date,
		}); err != nil {
			return false, fmt.Errorf("failed to seed transaction %q: %w", t.Description, err)
		}
	}

	for _, i := range s.Investments {
		date := now.AddDate(0, 0, -i.DaysAgo)
		amount, err := decimal.NewFromString(i.Amount)
		if err != nil {
			return false, fmt.Errorf("invalid demo amount %q: %w", i.Amount, err)
		}
		if _, err := s.InvestmentService.Create(ctx, ownerID, investment.CreateInvestmentInput{
			Name:     i.Name,
			Amount:   amount,
			Category: i.Category,
			Date:     &date,
			Notes:    i.Notes,
		}); err != nil {
			return false, fmt.Errorf("failed to seed investment %q: %w", i.Name, err)
		}
	}

	return true, nil
}
