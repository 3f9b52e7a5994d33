package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/infrastructure/postgres/generated"
	"github.com/pineos/rewardledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a transaction. The UNIQUE constraint on reference_id is the
// storage-level idempotency guard: a violation maps to
// domain.ErrDuplicateReference so callers can fetch the existing transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var metadata []byte
	if txn.Metadata != nil {
		var err error

		metadata, err = json.Marshal(txn.Metadata)
		if err != nil {
			return err
		}
	}

	_, err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:              txn.ID,
		ReferenceID:     txn.ReferenceID,
		TransactionType: string(txn.Type),
		Status:          string(txn.Status),
		Metadata:        metadata,
		CreatedAt:       timeToPgTimestamptz(txn.CreatedAt),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateReference
		}

		return err
	}

	return nil
}

// GetByReferenceID retrieves a transaction by its reference id.
func (r *TransactionRepository) GetByReferenceID(ctx context.Context, referenceID string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByReferenceID(ctx, referenceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// UpdateStatus transitions a transaction's status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, _ time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		ID:     id,
		Status: string(status),
	})
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	var metadata map[string]any
	if row.Metadata != nil {
		_ = json.Unmarshal(row.Metadata, &metadata)
	}

	return &domain.Transaction{
		ID:          row.ID,
		ReferenceID: row.ReferenceID,
		Type:        domain.TransactionType(row.TransactionType),
		Status:      domain.TransactionStatus(row.Status),
		Metadata:    metadata,
		CreatedAt:   row.CreatedAt.Time,
	}
}
