package investment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// CreateInvestmentInput represents the input for recording an investment
type CreateInvestmentInput struct {
	Name     string
	Amount   decimal.Decimal
	Category string
	Date     *time.Time // Optional: defaults to now
	Notes    string
}

// InvestmentService handles investment-related operations
type InvestmentService struct {
	InvestmentRepo domain.InvestmentRepository
	Categories     *domain.CategoryRegistry
	Now            func() time.Time
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(investmentRepo domain.InvestmentRepository, categories *domain.CategoryRegistry) *InvestmentService {
	return &InvestmentService{
		InvestmentRepo: investmentRepo,
		Categories:     categories,
		Now:            time.Now,
	}
}

// Create records a new investment owned by ownerID.
// It does not create a matching expense transaction.
func (s *InvestmentService) Create(ctx context.Context, ownerID uuid.UUID, input CreateInvestmentInput) (*domain.Investment, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	now := s.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	inv := &domain.Investment{
		ID:        uuid.New(),
		UserID:    ownerID,
		Name:      input.Name,
		Amount:    input.Amount,
		Category:  input.Category,
		Date:      date,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.Normalize()

	if err := inv.Validate(s.Categories); err != nil {
		return nil, err
	}

	if err := s.InvestmentRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Get returns an investment owned by ownerID
func (s *InvestmentService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Investment, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.InvestmentRepo.Get(ctx, ownerID, id)
}

// List returns the owner's investments matching filter, newest first, capped at domain.MaxListResults
func (s *InvestmentService) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Investment, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := filter.Range.Validate(); err != nil {
		return nil, err
	}
	filter.Type = nil
	filter.Limit = domain.MaxListResults

	return s.InvestmentRepo.List(ctx, ownerID, filter)
}

// Update applies a partial update to an investment owned by ownerID
func (s *InvestmentService) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.InvestmentPatch) (*domain.Investment, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	inv, err := s.InvestmentRepo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(inv)
	inv.Normalize()
	inv.Date = inv.Date.UTC()
	inv.UpdatedAt = s.Now().UTC()

	if err := inv.Validate(s.Categories); err != nil {
		return nil, err
	}

	if err := s.InvestmentRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Delete removes an investment owned by ownerID
func (s *InvestmentService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return domain.ErrUnauthenticated
	}
	return s.InvestmentRepo.Delete(ctx, ownerID, id)
}

// Stats returns per-category totals and counts of the owner's investments in the date range
func (s *InvestmentService) Stats(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}
	return s.InvestmentRepo.TotalsByCategory(ctx, ownerID, dateRange)
}
