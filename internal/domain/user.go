package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLength is the shortest accepted plaintext password
const MinPasswordLength = 6

// User is an account holder. PasswordHash never contains the plaintext password.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an email address.
// Emails are normalized before validation, storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that email is a bare, already normalized address
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("email", "email is not a valid address")
	}

	return nil
}

// ValidatePassword checks the plaintext password policy
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewValidationError("password", "password must be at least 6 characters")
	}
	return nil
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}

	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "name is required")
	}

	if u.PasswordHash == "" {
		return NewValidationError("password", "password hash is required")
	}

	return nil
}
