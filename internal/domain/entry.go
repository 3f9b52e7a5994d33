package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType marks an entry as a debit or a credit.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// Entry is a single ledger posting. Entries are append-only: corrections are
// new counter-entries in a new transaction, never edits.
type Entry struct {
	ID            string
	TransactionID string
	AccountID     string
	Type          EntryType
	Amount        decimal.Decimal
	CreatedAt     time.Time
}
