package domain

import "github.com/shopspring/decimal"

const (
	// MaxAmountScale is the number of decimal places an amount may carry
	MaxAmountScale = 8
	// maxAmountExponent bounds the raw exponent before any arithmetic touches the value
	maxAmountExponent = 32
)

// MaxAmount is the exclusive upper bound of a single amount
var MaxAmount = decimal.New(1, 15)

// ValidateAmount checks that an amount is positive, below MaxAmount and has at
// most MaxAmountScale decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return NewValidationError("amount", "amount is out of range")
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "amount must be positive")
	}

	if amount.GreaterThanOrEqual(MaxAmount) {
		return NewValidationError("amount", "amount must be less than "+MaxAmount.String())
	}

	if !amount.Truncate(MaxAmountScale).Equal(amount) {
		return NewValidationError("amount", "amount must have at most 8 decimal places")
	}

	return nil
}
