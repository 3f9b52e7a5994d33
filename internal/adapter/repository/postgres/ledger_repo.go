package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency sums credit and debit entry amounts across the ledger.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalCredits, totalDebits decimal.Decimal, err error) {
	q := generated.New(r.pool)

	result, err := q.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(result.TotalCredits), numericToDecimal(result.TotalDebits), nil
}
