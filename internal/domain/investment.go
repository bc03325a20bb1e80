package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is a holding recorded by a user, classified by an investment category.
// Investments are tracked separately from transactions.
type Investment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims free-text fields in place
func (i *Investment) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
	i.Notes = strings.TrimSpace(i.Notes)
}

// Validate ensures the investment adheres to domain rules
func (i *Investment) Validate(categories *CategoryRegistry) error {
	if i.UserID == uuid.Nil {
		return NewValidationError("userId", "investment must have an owner")
	}

	if i.Name == "" {
		return NewValidationError("name", "name is required")
	}

	if err := ValidateAmount(i.Amount); err != nil {
		return err
	}

	if i.Category == "" {
		return NewValidationError("category", "category is required")
	}

	if !categories.IsValid(TransactionTypeInvestment, i.Category) {
		return NewValidationError("category", "category '"+i.Category+"' is not a valid investment category")
	}

	if i.Date.IsZero() {
		return NewValidationError("date", "date is required")
	}

	return nil
}

// InvestmentPatch holds a partial update. Nil fields are left unchanged.
type InvestmentPatch struct {
	Name     *string
	Amount   *decimal.Decimal
	Category *string
	Date     *time.Time
	Notes    *string
}

// Apply copies the set fields of the patch onto i
func (p InvestmentPatch) Apply(i *Investment) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Amount != nil {
		i.Amount = *p.Amount
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Date != nil {
		i.Date = *p.Date
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
}
