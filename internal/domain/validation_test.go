package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/domain"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		errorType error
	}{
		{name: "positive integer", amount: "100"},
		{name: "two decimal places", amount: "99.99"},
		{name: "amount at cap", amount: "1000000000000"},
		{name: "zero", amount: "0", errorType: domain.ErrInvalidAmount},
		{name: "negative", amount: "-1", errorType: domain.ErrInvalidAmount},
		{name: "above cap", amount: "1000000000000.01", errorType: domain.ErrAmountTooLarge},
		{name: "three decimal places", amount: "1.001", errorType: domain.ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.errorType == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestValidateCreditInput(t *testing.T) {
	if err := domain.ValidateCreditInput("user-1", "ref-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := domain.ValidateCreditInput("", "ref-1"); !errors.Is(err, domain.ErrEmptyAccountID) {
		t.Errorf("expected ErrEmptyAccountID, got %v", err)
	}
	if err := domain.ValidateCreditInput("user-1", ""); !errors.Is(err, domain.ErrEmptyReferenceID) {
		t.Errorf("expected ErrEmptyReferenceID, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name             string
		limit, offset    int
		wantLim, wantOff int
	}{
		{name: "defaults applied", limit: 0, offset: 0, wantLim: 50, wantOff: 0},
		{name: "negative offset clamped", limit: 10, offset: -5, wantLim: 10, wantOff: 0},
		{name: "limit capped", limit: 5000, offset: 0, wantLim: 1000, wantOff: 0},
		{name: "values passed through", limit: 50, offset: 100, wantLim: 50, wantOff: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lim, off := domain.ValidatePagination(tt.limit, tt.offset)
			if lim != tt.wantLim || off != tt.wantOff {
				t.Errorf("got (%d, %d), want (%d, %d)", lim, off, tt.wantLim, tt.wantOff)
			}
		})
	}
}
