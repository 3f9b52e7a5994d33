package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/domain"
)

// LedgerUseCase orchestrates idempotent reward credits and compensating
// reversals over the double-entry ledger.
type LedgerUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	idGen           IDGenerator
	retrier         Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// CreditInput represents input for crediting a reward.
type CreditInput struct {
	AccountID   string
	Amount      decimal.Decimal
	ReferenceID string
	Description string
}

// Credit credits a reward to an account, funded by the system pool account.
// Safe to retry with the same reference id: duplicates return the original
// transaction with no second posting.
func (uc *LedgerUseCase) Credit(ctx context.Context, input CreditInput) (*domain.Transaction, error) {
	if err := domain.ValidateCreditInput(input.AccountID, input.ReferenceID); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Fast path: reference id already processed.
	existing, err := uc.transactionRepo.GetByReferenceID(ctx, input.ReferenceID)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}

	if input.Description == "" {
		input.Description = DefaultCreditDescription
	}

	var txn *domain.Transaction

	err = uc.retrier.Retry(ctx, func() error {
		var opErr error
		txn, opErr = uc.creditOnce(ctx, input)

		return opErr
	})
	if err != nil {
		// A concurrent request with the same reference id won the insert
		// race; its transaction is the result.
		if errors.Is(err, domain.ErrDuplicateReference) {
			return uc.transactionRepo.GetByReferenceID(ctx, input.ReferenceID)
		}

		return nil, err
	}

	return txn, nil
}

func (uc *LedgerUseCase) creditOnce(ctx context.Context, input CreditInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	recipient, pool, err := uc.lockAccountPair(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		ReferenceID: input.ReferenceID,
		Type:        domain.TypeRewardCredit,
		Status:      domain.StatusCompleted,
		Metadata:    map[string]any{"description": input.Description},
		CreatedAt:   now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	err = uc.postEntryPair(ctx, tx, txn.ID, recipient, pool, input.Amount, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// Reverse posts a compensating transaction for the credit identified by
// referenceID. Both the original and the reversal remain in the ledger;
// reversing twice returns the same reversal.
func (uc *LedgerUseCase) Reverse(ctx context.Context, referenceID, reason string) (*domain.Transaction, error) {
	original, err := uc.transactionRepo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	if original.Status == domain.StatusReversed {
		return original, nil
	}

	reversalRef := domain.ReversalReferenceID(referenceID)

	existing, err := uc.transactionRepo.GetByReferenceID(ctx, reversalRef)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}

	recipient, amount, err := uc.findRecipientEntry(ctx, original.ID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = DefaultReversalReason
	}

	var reversal *domain.Transaction

	err = uc.retrier.Retry(ctx, func() error {
		var opErr error
		reversal, opErr = uc.reverseOnce(ctx, original, recipient, amount, reversalRef, reason)

		return opErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReference) {
			return uc.transactionRepo.GetByReferenceID(ctx, reversalRef)
		}

		return nil, err
	}

	return reversal, nil
}

func (uc *LedgerUseCase) reverseOnce(
	ctx context.Context,
	original *domain.Transaction,
	recipientID string,
	amount decimal.Decimal,
	reversalRef, reason string,
) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	recipient, pool, err := uc.lockAccountPair(ctx, tx, recipientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversal := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		ReferenceID: reversalRef,
		Type:        domain.TypeRewardReversal,
		Status:      domain.StatusCompleted,
		Metadata:    map[string]any{"original_tx_id": original.ID, "reason": reason},
		CreatedAt:   now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, reversal); err != nil {
		return nil, err
	}

	// Swapped entry pair: debit the recipient, credit the pool.
	err = uc.postEntryPair(ctx, tx, reversal.ID, pool, recipient, amount, now)
	if err != nil {
		return nil, err
	}

	err = uc.transactionRepo.UpdateStatus(ctx, tx, original.ID, domain.StatusReversed, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return reversal, nil
}

// GetBalance returns the cached balance of an account. Unknown accounts have
// a zero balance and are not created.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return account.Balance, nil
}

// GetTransaction retrieves a transaction by its reference id.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, referenceID string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByReferenceID(ctx, referenceID)
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntries lists ledger entries for an account.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.GetByAccount(ctx, input.AccountID, limit, offset)
}

// lockAccountPair locks the recipient and pool accounts in sorted id order
// (deadlock prevention), creating either on first use.
func (uc *LedgerUseCase) lockAccountPair(ctx context.Context, tx Transaction, accountID string) (recipient, pool *domain.Account, err error) {
	ids := []string{accountID, domain.SystemPoolAccountID}
	sort.Strings(ids)

	locked := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		name := "Account " + id
		if id == domain.SystemPoolAccountID {
			name = SystemPoolAccountName
		}

		account, err := uc.accountRepo.GetOrCreateForUpdate(ctx, tx, id, name)
		if err != nil {
			return nil, nil, err
		}

		locked[id] = account
	}

	return locked[accountID], locked[domain.SystemPoolAccountID], nil
}

// postEntryPair posts a balanced CREDIT/DEBIT pair for amount and updates
// both cached balances inside the same transaction.
func (uc *LedgerUseCase) postEntryPair(
	ctx context.Context,
	tx Transaction,
	transactionID string,
	creditAccount, debitAccount *domain.Account,
	amount decimal.Decimal,
	now time.Time,
) error {
	creditEntry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		TransactionID: transactionID,
		AccountID:     creditAccount.ID,
		Type:          domain.EntryCredit,
		Amount:        amount,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, creditEntry); err != nil {
		return err
	}

	debitEntry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		TransactionID: transactionID,
		AccountID:     debitAccount.ID,
		Type:          domain.EntryDebit,
		Amount:        amount,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, debitEntry); err != nil {
		return err
	}

	newCreditBalance := creditAccount.ApplyCredit(amount)

	err := uc.accountRepo.UpdateBalance(ctx, tx, creditAccount.ID, newCreditBalance, now)
	if err != nil {
		return err
	}

	creditAccount.Balance = newCreditBalance
	creditAccount.Version++

	newDebitBalance := debitAccount.ApplyDebit(amount)

	err = uc.accountRepo.UpdateBalance(ctx, tx, debitAccount.ID, newDebitBalance, now)
	if err != nil {
		return err
	}

	debitAccount.Balance = newDebitBalance
	debitAccount.Version++

	return nil
}

// findRecipientEntry locates the original credit entry outside the system
// pool; its account and amount drive the reversal.
func (uc *LedgerUseCase) findRecipientEntry(ctx context.Context, transactionID string) (string, decimal.Decimal, error) {
	entries, err := uc.entryRepo.GetByTransaction(ctx, transactionID)
	if err != nil {
		return "", decimal.Zero, err
	}

	for _, e := range entries {
		if e.Type == domain.EntryCredit && e.AccountID != domain.SystemPoolAccountID {
			return e.AccountID, e.Amount, nil
		}
	}

	return "", decimal.Zero, domain.ErrNoRecipientEntry
}
