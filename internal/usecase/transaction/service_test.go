package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) TotalsByType(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	args := m.Called(ctx, ownerID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupTotal), args.Error(1)
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestService(repo domain.TransactionRepository) *TransactionService {
	service := NewTransactionService(repo, domain.DefaultCategoryRegistry())
	service.Now = func() time.Time { return fixedNow }
	return service
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	tx, err := service.Create(ctx, ownerID, CreateTransactionInput{
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.RequireFromString("1500.75"),
		Category:    "salary",
		Description: "  May salary ",
	})

	require.NoError(t, err)
	assert.Equal(t, ownerID, tx.UserID)
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, "May salary", tx.Description)
	assert.Equal(t, fixedNow, tx.Date, "date defaults to now")
	assert.Equal(t, fixedNow, tx.CreatedAt)
	assert.True(t, decimal.RequireFromString("1500.75").Equal(tx.Amount))
	mockRepo.AssertExpectations(t)
}

func TestCreate_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		input  CreateTransactionInput
		errMsg string
	}{
		{
			name: "Category not valid for type",
			input: CreateTransactionInput{
				Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(10),
				Category: "salary", Description: "x",
			},
			errMsg: "category 'salary' is not valid for type expense",
		},
		{
			name: "Non-positive amount",
			input: CreateTransactionInput{
				Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(-5),
				Category: "groceries", Description: "x",
			},
			errMsg: "amount must be positive",
		},
		{
			name: "Unknown type",
			input: CreateTransactionInput{
				Type: domain.TransactionType("gift"), Amount: decimal.NewFromInt(5),
				Category: "groceries", Description: "x",
			},
			errMsg: "type must be one of income, expense, investment",
		},
		{
			name: "Blank description",
			input: CreateTransactionInput{
				Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(5),
				Category: "groceries", Description: "   ",
			},
			errMsg: "description is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTransactionRepository)
			service := newTestService(mockRepo)

			tx, err := service.Create(ctx, uuid.New(), tt.input)

			assert.Nil(t, tx)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.errMsg)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_RequiresOwner(t *testing.T) {
	service := newTestService(new(MockTransactionRepository))

	_, err := service.Create(context.Background(), uuid.Nil, CreateTransactionInput{})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestList_EnforcesCapAndForwardsFilter(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()

	expense := domain.TransactionTypeExpense
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	requested := domain.ListFilter{
		Type:     &expense,
		Category: "groceries",
		Range:    domain.DateRange{Start: &start},
		Limit:    1000,
	}
	expected := requested
	expected.Limit = domain.MaxListResults

	mockRepo.On("List", ctx, ownerID, expected).Return([]*domain.Transaction{}, nil)

	result, err := service.List(ctx, ownerID, requested)

	assert.NoError(t, err)
	assert.Empty(t, result)
	mockRepo.AssertExpectations(t)
}

func TestList_InvalidFilter(t *testing.T) {
	ctx := context.Background()
	service := newTestService(new(MockTransactionRepository))

	bogus := domain.TransactionType("transfer")
	_, err := service.List(ctx, uuid.New(), domain.ListFilter{Type: &bogus})
	assert.ErrorIs(t, err, domain.ErrValidation)

	later := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	earlier := later.AddDate(0, -1, 0)
	_, err = service.List(ctx, uuid.New(), domain.ListFilter{Range: domain.DateRange{Start: &later, End: &earlier}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_AppliesPatchAndRevalidates(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()
	txID := uuid.New()

	existing := &domain.Transaction{
		ID:          txID,
		UserID:      ownerID,
		Type:        domain.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(20),
		Category:    "dining",
		Description: "Lunch",
		Date:        fixedNow.Add(-24 * time.Hour),
		CreatedAt:   fixedNow.Add(-24 * time.Hour),
	}

	mockRepo.On("Get", ctx, ownerID, txID).Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.ID == txID && tx.UserID == ownerID && tx.Amount.Equal(decimal.NewFromInt(25))
	})).Return(nil)

	amount := decimal.NewFromInt(25)
	updated, err := service.Update(ctx, ownerID, txID, domain.TransactionPatch{Amount: &amount})

	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "Lunch", updated.Description, "unpatched fields are kept")
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_InvalidMergeIsRejected(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()
	txID := uuid.New()

	existing := &domain.Transaction{
		ID: txID, UserID: ownerID, Type: domain.TransactionTypeExpense,
		Amount: decimal.NewFromInt(20), Category: "dining", Description: "Lunch", Date: fixedNow,
	}
	mockRepo.On("Get", ctx, ownerID, txID).Return(existing, nil)

	// Switching the type without a matching category leaves an invalid record
	income := domain.TransactionTypeIncome
	_, err := service.Update(ctx, ownerID, txID, domain.TransactionPatch{Type: &income})

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_ForeignRecordIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()
	txID := uuid.New()

	mockRepo.On("Get", ctx, ownerID, txID).Return(nil, domain.ErrTransactionNotFound)

	description := "hijack"
	_, err := service.Update(ctx, ownerID, txID, domain.TransactionPatch{Description: &description})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()
	ownID := uuid.New()
	foreignID := uuid.New()

	mockRepo.On("Delete", ctx, ownerID, ownID).Return(nil)
	mockRepo.On("Delete", ctx, ownerID, foreignID).Return(domain.ErrTransactionNotFound)

	assert.NoError(t, service.Delete(ctx, ownerID, ownID))
	assert.ErrorIs(t, service.Delete(ctx, ownerID, foreignID), domain.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()

	totals := []domain.GroupTotal{
		{Key: "income", Total: decimal.NewFromInt(3000), Count: 2},
		{Key: "expense", Total: decimal.NewFromInt(120), Count: 4},
	}
	mockRepo.On("TotalsByType", ctx, ownerID, domain.DateRange{}).Return(totals, nil)

	result, err := service.Stats(ctx, ownerID, domain.DateRange{})

	assert.NoError(t, err)
	assert.Equal(t, totals, result)
	mockRepo.AssertExpectations(t)
}
