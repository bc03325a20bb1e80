package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

const transactionColumns = `id, user_id, type, amount, category, description, date, created_at, updated_at`

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		string(tx.Type),
		tx.Amount.String(),
		tx.Category,
		tx.Description,
		tx.Date,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return wrapErr(ctx, "failed to insert transaction", err)
	}

	return nil
}

// Get retrieves a transaction owned by ownerID
func (r *transactionRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Transaction, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, wrapErr(ctx, "failed to get transaction", err)
	}

	return tx, nil
}

// Update overwrites the mutable fields of a transaction owned by tx.UserID
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE transactions
		SET type = $3, amount = $4, category = $5, description = $6, date = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		string(tx.Type),
		tx.Amount.String(),
		tx.Category,
		tx.Description,
		tx.Date,
		tx.UpdatedAt,
	)
	if err != nil {
		return wrapErr(ctx, "failed to update transaction", err)
	}

	return expectOneRow(result, domain.ErrTransactionNotFound)
}

// Delete removes a transaction owned by ownerID
func (r *transactionRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return wrapErr(ctx, "failed to delete transaction", err)
	}

	return expectOneRow(result, domain.ErrTransactionNotFound)
}

// List retrieves the owner's transactions, newest first
func (r *transactionRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Transaction, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	where := ownedBy(ownerID)
	if filter.Type != nil {
		where.add("type = $%d", string(*filter.Type))
	}
	if filter.Category != "" {
		where.add("category = $%d", filter.Category)
	}
	where.dateRange(filter.Range)

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE %s
		ORDER BY date DESC, seq DESC
		LIMIT %s
	`, transactionColumns, where.String(), where.limit(filter.EffectiveLimit()))

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, wrapErr(ctx, "failed to list transactions", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapErr(ctx, "failed to scan transaction", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(ctx, "error iterating transactions", err)
	}

	return transactions, nil
}

// TotalsByType sums the owner's transaction amounts per type
func (r *transactionRepository) TotalsByType(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	where := ownedBy(ownerID)
	where.dateRange(dateRange)

	query := fmt.Sprintf(`
		SELECT type, SUM(amount)::text, COUNT(*)
		FROM transactions
		WHERE %s
		GROUP BY type
		ORDER BY type
	`, where.String())

	return queryGroupTotals(ctx, r.db, query, where.args)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var txType string
	var amountStr string

	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&txType,
		&amountStr,
		&tx.Category,
		&tx.Description,
		&tx.Date,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse amount (NUMERIC)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	tx.Type = domain.TransactionType(txType)
	tx.Amount = amount
	tx.Date = tx.Date.UTC()
	tx.CreatedAt = tx.CreatedAt.UTC()
	tx.UpdatedAt = tx.UpdatedAt.UTC()

	return &tx, nil
}

func queryGroupTotals(ctx context.Context, db *DB, query string, args []interface{}) ([]domain.GroupTotal, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(ctx, "failed to aggregate totals", err)
	}
	defer rows.Close()

	totals := make([]domain.GroupTotal, 0)
	for rows.Next() {
		var group domain.GroupTotal
		var key sql.NullString
		var totalStr string

		if err := rows.Scan(&key, &totalStr, &group.Count); err != nil {
			return nil, wrapErr(ctx, "failed to scan totals", err)
		}

		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total: %w", err)
		}
		group.Key = key.String
		group.Total = total
		totals = append(totals, group)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(ctx, "error iterating totals", err)
	}

	return totals, nil
}

func expectOneRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
