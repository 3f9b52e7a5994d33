package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrAmountPrecision  = errors.New("amount has too many decimal places")
	ErrEmptyAccountID   = errors.New("account id cannot be empty")
	ErrEmptyReferenceID = errors.New("reference id cannot be empty")

	// Lookup errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateReference is returned by storage when a transaction with
	// the same reference id already exists. Callers treat it as "already
	// processed" and re-fetch the existing transaction.
	ErrDuplicateReference = errors.New("transaction reference id already exists")

	// ErrNoRecipientEntry indicates a malformed original transaction: no
	// credit entry outside the system pool to derive the reversal from.
	ErrNoRecipientEntry = errors.New("no recipient credit entry to reverse")
)
