package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// Create stores a new user. Returns ErrEmailTaken if the email exists.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by normalized email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TransactionRepository defines the interface for transaction persistence operations.
// Every read and write is scoped by the owner id.
type TransactionRepository interface {
	// Create stores a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// Get retrieves a transaction owned by ownerID.
	// Returns ErrTransactionNotFound if it is missing or owned by someone else.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)

	// Update overwrites a transaction owned by tx.UserID
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction owned by ownerID
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// List returns transactions matching the filter, newest first
	// (date descending, then insertion order descending), capped at filter.EffectiveLimit()
	List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Transaction, error)

	// TotalsByType sums amounts per transaction type inside the date range
	TotalsByType(ctx context.Context, ownerID uuid.UUID, dateRange DateRange) ([]GroupTotal, error)
}

// InvestmentRepository defines the interface for investment persistence operations.
// Every read and write is scoped by the owner id.
type InvestmentRepository interface {
	// Create stores a new investment
	Create(ctx context.Context, inv *Investment) error

	// Get retrieves an investment owned by ownerID.
	// Returns ErrInvestmentNotFound if it is missing or owned by someone else.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Investment, error)

	// Update overwrites an investment owned by inv.UserID
	Update(ctx context.Context, inv *Investment) error

	// Delete removes an investment owned by ownerID
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// List returns investments matching the filter, newest first.
	// filter.Type is ignored.
	List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Investment, error)

	// TotalsByCategory sums amounts per investment category inside the date range
	TotalsByCategory(ctx context.Context, ownerID uuid.UUID, dateRange DateRange) ([]GroupTotal, error)
}
