package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxRewardAmount   = "1000000000000" // 1 trillion
	MaxAmountExponent = -2              // DECIMAL(20,2) in storage
)

// ValidateAmount validates a reward amount: positive, bounded, and within
// the precision the ledger stores.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxRewardAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxRewardAmount)
	}

	if amount.Exponent() < MaxAmountExponent {
		return fmt.Errorf("%w: at most %d decimal places", ErrAmountPrecision, -MaxAmountExponent)
	}

	return nil
}

// ValidateCreditInput validates the identifying fields of a credit request.
func ValidateCreditInput(accountID, referenceID string) error {
	if strings.TrimSpace(accountID) == "" {
		return ErrEmptyAccountID
	}

	if strings.TrimSpace(referenceID) == "" {
		return ErrEmptyReferenceID
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
