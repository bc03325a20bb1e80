package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // PostgreSQL driver
	"github.com/simaogato/fintrack-backend/internal/domain"
)

const (
	pqUniqueViolation = "23505"
	pqQueryCanceled   = "57014"
	pqForeignKey      = "23503"
)

// Options configures the shared connection pool
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// QueryTimeout bounds every repository call
	QueryTimeout time.Duration
}

// DefaultOptions returns the pool settings used when none are configured
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		QueryTimeout:    5 * time.Second,
	}
}

// DB wraps the process-wide database connection pool
type DB struct {
	*sql.DB
	queryTimeout time.Duration
}

// NewDB creates a new database connection pool
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=fintrack sslmode=disable"
func NewDB(ctx context.Context, connectionString string, opts Options) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultOptions().QueryTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, queryTimeout: opts.QueryTimeout}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// withTimeout derives the context a single repository call runs under
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.queryTimeout)
}

// wrapErr annotates a driver error. Deadline and cancellation errors caused by
// the call timeout are reported as domain.ErrStoreTimeout.
func wrapErr(ctx context.Context, msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", msg, domain.ErrStoreTimeout)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqQueryCanceled:
			return fmt.Errorf("%s: %w", msg, domain.ErrStoreTimeout)
		case pqForeignKey:
			// owner row is gone while its token is still valid
			return fmt.Errorf("%s: %w", msg, domain.ErrUnauthenticated)
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
