package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusReversed  TransactionStatus = "REVERSED"
)

// TransactionType categorizes a transaction.
type TransactionType string

const (
	TypeRewardCredit   TransactionType = "REWARD_CREDIT"
	TypeRewardReversal TransactionType = "REWARD_REVERSAL"
	TypePayout         TransactionType = "PAYOUT"
)

// ReversalReferencePrefix derives the reversal idempotency key from the
// original reference id, so concurrent reversal requests collapse onto one
// transaction.
const ReversalReferencePrefix = "reversal_"

// Transaction groups a balanced set of ledger entries. A transaction is
// immutable after creation except for the COMPLETED -> REVERSED status
// transition.
type Transaction struct {
	ID          string
	ReferenceID string
	Type        TransactionType
	Status      TransactionStatus
	Metadata    map[string]any
	CreatedAt   time.Time
}

// ReversalReferenceID returns the reference id a reversal of ref would use.
func ReversalReferenceID(ref string) string {
	return ReversalReferencePrefix + ref
}

// IsBalanced reports whether the credit and debit entry amounts cancel out.
func IsBalanced(entries []*Entry) bool {
	sum := decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case EntryCredit:
			sum = sum.Add(e.Amount)
		case EntryDebit:
			sum = sum.Sub(e.Amount)
		}
	}

	return sum.IsZero()
}
