package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new transaction repository backed by store
func NewTransactionRepository(store *Store) domain.TransactionRepository {
	return &transactionRepository{store: store}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.transactions[tx.ID] = storedTransaction{seq: r.store.next(), tx: *tx}
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Transaction, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored, ok := r.store.transactions[id]
	if !ok || stored.tx.UserID != ownerID {
		return nil, domain.ErrTransactionNotFound
	}
	tx := stored.tx
	return &tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.transactions[tx.ID]
	if !ok || stored.tx.UserID != tx.UserID {
		return domain.ErrTransactionNotFound
	}
	updated := *tx
	updated.CreatedAt = stored.tx.CreatedAt
	r.store.transactions[tx.ID] = storedTransaction{seq: stored.seq, tx: updated}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.transactions[id]
	if !ok || stored.tx.UserID != ownerID {
		return domain.ErrTransactionNotFound
	}
	delete(r.store.transactions, id)
	return nil
}

func (r *transactionRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Transaction, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	matches := make([]storedTransaction, 0)
	for _, stored := range r.store.transactions {
		if stored.tx.UserID != ownerID {
			continue
		}
		if filter.Type != nil && stored.tx.Type != *filter.Type {
			continue
		}
		if filter.Category != "" && stored.tx.Category != filter.Category {
			continue
		}
		if !filter.Range.Contains(stored.tx.Date) {
			continue
		}
		matches = append(matches, stored)
	}
	r.store.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].tx.Date.Equal(matches[j].tx.Date) {
			return matches[i].tx.Date.After(matches[j].tx.Date)
		}
		return matches[i].seq > matches[j].seq
	})

	limit := filter.EffectiveLimit()
	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]*domain.Transaction, 0, len(matches))
	for i := range matches {
		tx := matches[i].tx
		result = append(result, &tx)
	}
	return result, nil
}

func (r *transactionRepository) TotalsByType(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	groups := make(map[string]*domain.GroupTotal)
	for _, stored := range r.store.transactions {
		if stored.tx.UserID != ownerID || !dateRange.Contains(stored.tx.Date) {
			continue
		}
		addToGroup(groups, string(stored.tx.Type), stored.tx.Amount)
	}
	return sortTotals(groups), nil
}
