package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// investmentRepository implements domain.InvestmentRepository
type investmentRepository struct {
	store *Store
}

// NewInvestmentRepository creates a new investment repository backed by store
func NewInvestmentRepository(store *Store) domain.InvestmentRepository {
	return &investmentRepository{store: store}
}

func (r *investmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.investments[inv.ID] = storedInvestment{seq: r.store.next(), inv: *inv}
	return nil
}

func (r *investmentRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Investment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored, ok := r.store.investments[id]
	if !ok || stored.inv.UserID != ownerID {
		return nil, domain.ErrInvestmentNotFound
	}
	inv := stored.inv
	return &inv, nil
}

func (r *investmentRepository) Update(ctx context.Context, inv *domain.Investment) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.investments[inv.ID]
	if !ok || stored.inv.UserID != inv.UserID {
		return domain.ErrInvestmentNotFound
	}
	updated := *inv
	updated.CreatedAt = stored.inv.CreatedAt
	r.store.investments[inv.ID] = storedInvestment{seq: stored.seq, inv: updated}
	return nil
}

func (r *investmentRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.investments[id]
	if !ok || stored.inv.UserID != ownerID {
		return domain.ErrInvestmentNotFound
	}
	delete(r.store.investments, id)
	return nil
}

func (r *investmentRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Investment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	matches := make([]storedInvestment, 0)
	for _, stored := range r.store.investments {
		if stored.inv.UserID != ownerID {
			continue
		}
		if filter.Category != "" && stored.inv.Category != filter.Category {
			continue
		}
		if !filter.Range.Contains(stored.inv.Date) {
			continue
		}
		matches = append(matches, stored)
	}
	r.store.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].inv.Date.Equal(matches[j].inv.Date) {
			return matches[i].inv.Date.After(matches[j].inv.Date)
		}
		return matches[i].seq > matches[j].seq
	})

	limit := filter.EffectiveLimit()
	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]*domain.Investment, 0, len(matches))
	for i := range matches {
		inv := matches[i].inv
		result = append(result, &inv)
	}
	return result, nil
}

func (r *investmentRepository) TotalsByCategory(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	groups := make(map[string]*domain.GroupTotal)
	for _, stored := range r.store.investments {
		if stored.inv.UserID != ownerID || !dateRange.Contains(stored.inv.Date) {
			continue
		}
		addToGroup(groups, stored.inv.Category, stored.inv.Amount)
	}
	return sortTotals(groups), nil
}
