package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemPoolAccountID is the counterparty account that funds reward credits
// and absorbs their reversals.
const SystemPoolAccountID = "system_rewards_pool"

// Account represents a ledger account that can hold a balance.
// Balance is a materialized view: it must always equal the sum of credit
// entries minus the sum of debit entries for this account.
type Account struct {
	ID        string
	Name      string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyCredit returns the balance after a credit entry.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyDebit returns the balance after a debit entry.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
