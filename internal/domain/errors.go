package domain

import "errors"

// Sentinel errors shared by every layer. Adapters map them onto transport
// status codes; anything else is treated as an internal failure.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAggregationFailed  = errors.New("aggregation failed")
	ErrStoreTimeout       = errors.New("store timeout")
)

// Entity-specific not-found errors. A record owned by another user is
// reported with the same error as a missing one.
var (
	ErrTransactionNotFound = wrapNotFound("transaction")
	ErrInvestmentNotFound  = wrapNotFound("investment")
	ErrUserNotFound        = wrapNotFound("user")
)

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = &ValidationError{Field: "email", Message: "email already registered"}

type notFoundError struct {
	entity string
}

func wrapNotFound(entity string) error {
	return &notFoundError{entity: entity}
}

func (e *notFoundError) Error() string {
	return e.entity + " not found"
}

func (e *notFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports ValidationError values as ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
