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

const investmentColumns = `id, user_id, name, amount, category, date, notes, created_at, updated_at`

// investmentRepository implements domain.InvestmentRepository
type investmentRepository struct {
	db *DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *DB) domain.InvestmentRepository {
	return &investmentRepository{db: db}
}

// Create inserts a new investment
func (r *investmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO investments (id, user_id, name, amount, category, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.UserID,
		inv.Name,
		inv.Amount.String(),
		inv.Category,
		inv.Date,
		nullableString(inv.Notes),
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return wrapErr(ctx, "failed to insert investment", err)
	}

	return nil
}

// Get retrieves an investment owned by ownerID
func (r *investmentRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Investment, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1 AND user_id = $2`

	inv, err := scanInvestment(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, wrapErr(ctx, "failed to get investment", err)
	}

	return inv, nil
}

// Update overwrites the mutable fields of an investment owned by inv.UserID
func (r *investmentRepository) Update(ctx context.Context, inv *domain.Investment) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE investments
		SET name = $3, amount = $4, category = $5, date = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.UserID,
		inv.Name,
		inv.Amount.String(),
		inv.Category,
		inv.Date,
		nullableString(inv.Notes),
		inv.UpdatedAt,
	)
	if err != nil {
		return wrapErr(ctx, "failed to update investment", err)
	}

	return expectOneRow(result, domain.ErrInvestmentNotFound)
}

// Delete removes an investment owned by ownerID
func (r *investmentRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return wrapErr(ctx, "failed to delete investment", err)
	}

	return expectOneRow(result, domain.ErrInvestmentNotFound)
}

// List retrieves the owner's investments, newest first
func (r *investmentRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ListFilter) ([]*domain.Investment, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	where := ownedBy(ownerID)
	if filter.Category != "" {
		where.add("category = $%d", filter.Category)
	}
	where.dateRange(filter.Range)

	query := fmt.Sprintf(`
		SELECT %s
		FROM investments
		WHERE %s
		ORDER BY date DESC, seq DESC
		LIMIT %s
	`, investmentColumns, where.String(), where.limit(filter.EffectiveLimit()))

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, wrapErr(ctx, "failed to list investments", err)
	}
	defer rows.Close()

	investments := make([]*domain.Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, wrapErr(ctx, "failed to scan investment", err)
		}
		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(ctx, "error iterating investments", err)
	}

	return investments, nil
}

// TotalsByCategory sums the owner's investment amounts per category
func (r *investmentRepository) TotalsByCategory(ctx context.Context, ownerID uuid.UUID, dateRange domain.DateRange) ([]domain.GroupTotal, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	where := ownedBy(ownerID)
	where.dateRange(dateRange)

	query := fmt.Sprintf(`
		SELECT category, SUM(amount)::text, COUNT(*)
		FROM investments
		WHERE %s
		GROUP BY category
		ORDER BY category
	`, where.String())

	return queryGroupTotals(ctx, r.db, query, where.args)
}

func scanInvestment(row rowScanner) (*domain.Investment, error) {
	var inv domain.Investment
	var amountStr string
	var notes sql.NullString

	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.Name,
		&amountStr,
		&inv.Category,
		&inv.Date,
		&notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse amount (NUMERIC)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	inv.Amount = amount
	inv.Notes = notes.String
	inv.Date = inv.Date.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()

	return &inv, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
