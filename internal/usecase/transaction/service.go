package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// CreateTransactionInput represents the input for recording a transaction
type CreateTransactionInput struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        *time.Time // Optional: defaults to now
}

// TransactionService handles the transaction records of a user
type TransactionService struct {
	TransactionRepo domain.TransactionRepository
	Categories      *domain.CategoryRegistry
	Now             func() time.Time
}

// NewTransactionService creates a new TransactionService instance
func NewTransactionService(transactionRepo domain.TransactionRepository, categories *domain.CategoryRegistry) *TransactionService {
	return &TransactionService{
		TransactionRepo: transactionRepo,
		Categories:      categories,
		Now:             time.Now,
	}
}

// Create records a new transaction owned by ownerID
func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	now := s.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      ownerID,
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tx.Normalize()

	if err := tx.Validate(s.Categories); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Get returns a transaction owned by ownerID
func (s *TransactionService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.TransactionRepo.Get(ctx, ownerID, id)
}

// List returns the owner's transactions matching filter, newest first.
// At most domain.MaxListResults records are returned regardless of the filter.
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	if filter.Type != nil && !s.Categories.IsValidType(*filter.Type) {
		return nil, domain.NewValidationError("type", "type must be one of income, expense, investment")
	}
	if err := filter.Range.Validate(); err != nil {
		return nil, err
	}
	filter.Limit = domain.MaxListResults

	return s.TransactionRepo.List(ctx, ownerID, filter)
}

// Update applies a partial update to a transaction owned by ownerID.
// Logic:
//  1. Load the record under the owner predicate (foreign or missing -> not found)
//  2. Apply the patch and re-validate the merged record
//  3. Write it back under the same owner predicate (last write wins)
func (s *TransactionService) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	tx, err := s.TransactionRepo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(tx)
	tx.Normalize()
	tx.Date = tx.Date.UTC()
	tx.UpdatedAt = s.Now().UTC()

	if err := tx.Validate(s.Categories); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete removes a transaction owned by ownerID
func (s *TransactionService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return domain.ErrUnauthenticated
	}
	return s.TransactionRepo.Delete(ctx, ownerID, id)
}

// Stats returns per-type totals and counts of the owner's transactions in the date range
func (s *TransactionService) Stats(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}
	return s.TransactionRepo.TotalsByType(ctx, ownerID, dateRange)
}
