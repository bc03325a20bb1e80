package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTx(owner uuid.UUID, txType domain.TransactionType, category, amount string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:          uuid.New(),
		UserID:      owner,
		Type:        txType,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: category,
		Date:        date,
		CreatedAt:   time.Now(),
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	alice, bob := uuid.New(), uuid.New()

	aliceTx := newTx(alice, domain.TransactionTypeExpense, "groceries", "10", day(1))
	require.NoError(t, repo.Create(ctx, aliceTx))

	_, err := repo.Get(ctx, bob, aliceTx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hijack := *aliceTx
	hijack.UserID = bob
	hijack.Description = "mine now"
	assert.ErrorIs(t, repo.Update(ctx, &hijack), domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, bob, aliceTx.ID), domain.ErrNotFound)

	bobList, err := repo.List(ctx, bob, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobList)

	// Alice's record is untouched
	got, err := repo.Get(ctx, alice, aliceTx.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Description)
	assert.Equal(t, alice, got.UserID)
}

func TestTransactionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	tx := newTx(owner, domain.TransactionTypeIncome, "salary", "1234.5678", day(3))
	require.NoError(t, repo.Create(ctx, tx))

	list, err := repo.List(ctx, owner, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tx.ID, list[0].ID)
	assert.Equal(t, "1234.5678", list[0].Amount.String())
	assert.Equal(t, tx.Date, list[0].Date)

	// Mutating the returned copy does not touch the store
	list[0].Description = "changed"
	again, err := repo.Get(ctx, owner, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "salary", again.Description)
}

func TestTransactionRepository_ListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	first := newTx(owner, domain.TransactionTypeExpense, "groceries", "10", day(5))
	sameDay := newTx(owner, domain.TransactionTypeExpense, "dining", "20", day(5))
	older := newTx(owner, domain.TransactionTypeIncome, "salary", "100", day(1))
	newest := newTx(owner, domain.TransactionTypeExpense, "groceries", "5", day(9))
	for _, tx := range []*domain.Transaction{first, sameDay, older, newest} {
		require.NoError(t, repo.Create(ctx, tx))
	}

	all, err := repo.List(ctx, owner, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// Date descending; the later insert wins a tie
	assert.Equal(t, []uuid.UUID{newest.ID, sameDay.ID, first.ID, older.ID},
		[]uuid.UUID{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	expense := domain.TransactionTypeExpense
	expenses, err := repo.List(ctx, owner, domain.ListFilter{Type: &expense})
	require.NoError(t, err)
	assert.Len(t, expenses, 3)

	groceries, err := repo.List(ctx, owner, domain.ListFilter{Category: "groceries"})
	require.NoError(t, err)
	assert.Len(t, groceries, 2)

	start, end := day(5), day(5)
	bounded, err := repo.List(ctx, owner, domain.ListFilter{Range: domain.DateRange{Start: &start, End: &end}})
	require.NoError(t, err)
	assert.Len(t, bounded, 2, "both bounds are inclusive")
}

func TestTransactionRepository_ListCap(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 150; i++ {
		require.NoError(t, repo.Create(ctx, newTx(owner, domain.TransactionTypeExpense, "shopping", "1", base.Add(time.Duration(i)*time.Hour))))
	}

	list, err := repo.List(ctx, owner, domain.ListFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, list, domain.MaxListResults)
	assert.Equal(t, base.Add(149*time.Hour), list[0].Date, "newest first")

	recent, err := repo.List(ctx, owner, domain.ListFilter{Limit: domain.RecentTransactionsLimit})
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}

func TestTransactionRepository_TotalsByType(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	require.NoError(t, repo.Create(ctx, newTx(owner, domain.TransactionTypeIncome, "salary", "1000.10", day(1))))
	require.NoError(t, repo.Create(ctx, newTx(owner, domain.TransactionTypeIncome, "freelance", "200.20", day(2))))
	require.NoError(t, repo.Create(ctx, newTx(owner, domain.TransactionTypeExpense, "rent", "700", day(3))))
	require.NoError(t, repo.Create(ctx, newTx(uuid.New(), domain.TransactionTypeIncome, "salary", "99999", day(1))))

	totals, err := repo.TotalsByType(ctx, owner, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "expense", totals[0].Key)
	assert.True(t, decimal.NewFromInt(700).Equal(totals[0].Total))
	assert.Equal(t, "income", totals[1].Key)
	assert.True(t, decimal.RequireFromString("1200.30").Equal(totals[1].Total))
	assert.Equal(t, 2, totals[1].Count)

	end := day(1)
	ranged, err := repo.TotalsByType(ctx, owner, domain.DateRange{End: &end})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.True(t, decimal.RequireFromString("1000.10").Equal(ranged[0].Total))
}

func TestTransactionRepository_UpdateKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	a := newTx(owner, domain.TransactionTypeExpense, "dining", "1", day(2))
	b := newTx(owner, domain.TransactionTypeExpense, "dining", "2", day(2))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.Description = "edited"
	require.NoError(t, repo.Update(ctx, a))

	list, err := repo.List(ctx, owner, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, "edited", list[1].Description)
}

func TestRepository_ExpiredContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	_, err := NewTransactionRepository(store).List(ctx, uuid.New(), domain.ListFilter{})
	assert.ErrorIs(t, err, domain.ErrStoreTimeout)

	_, err = NewInvestmentRepository(store).TotalsByCategory(ctx, uuid.New(), domain.DateRange{})
	assert.ErrorIs(t, err, domain.ErrStoreTimeout)
}

func TestInvestmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInvestmentRepository(NewStore())
	owner, other := uuid.New(), uuid.New()

	stocks := &domain.Investment{ID: uuid.New(), UserID: owner, Name: "ETF", Amount: decimal.NewFromInt(500), Category: "stocks", Date: day(4)}
	moreStocks := &domain.Investment{ID: uuid.New(), UserID: owner, Name: "Shares", Amount: decimal.NewFromInt(250), Category: "stocks", Date: day(6)}
	gold := &domain.Investment{ID: uuid.New(), UserID: owner, Name: "Coins", Amount: decimal.NewFromInt(100), Category: "gold", Date: day(2)}
	foreign := &domain.Investment{ID: uuid.New(), UserID: other, Name: "Theirs", Amount: decimal.NewFromInt(9), Category: "gold", Date: day(2)}
	for _, inv := range []*domain.Investment{stocks, moreStocks, gold, foreign} {
		require.NoError(t, repo.Create(ctx, inv))
	}

	list, err := repo.List(ctx, owner, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, moreStocks.ID, list[0].ID)

	totals, err := repo.TotalsByCategory(ctx, owner, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "gold", totals[0].Key)
	assert.True(t, decimal.NewFromInt(100).Equal(totals[0].Total))
	assert.Equal(t, "stocks", totals[1].Key)
	assert.True(t, decimal.NewFromInt(750).Equal(totals[1].Total))
	assert.Equal(t, 2, totals[1].Count)

	assert.ErrorIs(t, repo.Delete(ctx, owner, foreign.ID), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, owner, gold.ID))
	_, err = repo.Get(ctx, owner, gold.ID)
	assert.ErrorIs(t, err, domain.ErrInvestmentNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	user := &domain.User{ID: uuid.New(), Email: "jane@example.com", Name: "Jane", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	dup := &domain.User{ID: uuid.New(), Email: "jane@example.com", Name: "Other", PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}
