package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
)

// Transaction is a single income, expense or investment cash flow owned by one user
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal // exact, always positive
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize trims free-text fields in place
func (t *Transaction) Normalize() {
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
}

// Validate ensures the transaction adheres to domain rules.
// The category must belong to the registry list of the transaction type.
func (t *Transaction) Validate(categories *CategoryRegistry) error {
	if t.UserID == uuid.Nil {
		return NewValidationError("userId", "transaction must have an owner")
	}

	if !categories.IsValidType(t.Type) {
		return NewValidationError("type", "type must be one of income, expense, investment")
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if t.Category == "" {
		return NewValidationError("category", "category is required")
	}

	if !categories.IsValid(t.Type, t.Category) {
		return NewValidationError("category", "category '"+t.Category+"' is not valid for type "+string(t.Type))
	}

	if t.Description == "" {
		return NewValidationError("description", "description is required")
	}

	if t.Date.IsZero() {
		return NewValidationError("date", "date is required")
	}

	return nil
}

// TransactionPatch holds a partial update. Nil fields are left unchanged.
type TransactionPatch struct {
	Type        *TransactionType
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Date        *time.Time
}

// Apply copies the set fields of the patch onto t
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
}
