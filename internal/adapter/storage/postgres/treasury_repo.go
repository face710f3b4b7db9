package postgres

import (
	"context"
	"errors"
	"fmt"

	"collateral-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TreasuryRepo implements ports.TreasuryRepository. The treasury table
// holds at most one row.
type TreasuryRepo struct {
	pool Pool
}

// NewTreasuryRepo creates a new TreasuryRepo.
func NewTreasuryRepo(pool Pool) *TreasuryRepo {
	return &TreasuryRepo{pool: pool}
}

// Create inserts the treasury record.
func (r *TreasuryRepo) Create(ctx context.Context, t *domain.Treasury) error {
	query := `INSERT INTO treasuries (address, balance, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		t.Address, int64(t.Balance), int16(t.Bump), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert treasury: %w", err)
	}
	return nil
}

// Get fetches the treasury record (non-locking read).
func (r *TreasuryRepo) Get(ctx context.Context) (*domain.Treasury, error) {
	query := `SELECT address, balance, bump, created_at, updated_at FROM treasuries LIMIT 1`

	return scanTreasury(r.pool.QueryRow(ctx, query))
}

// GetForUpdate fetches the treasury record with pessimistic locking.
// This MUST be called within a transaction.
func (r *TreasuryRepo) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Treasury, error) {
	query := `SELECT address, balance, bump, created_at, updated_at FROM treasuries LIMIT 1 FOR UPDATE`

	return scanTreasury(tx.QueryRow(ctx, query))
}

// UpdateBalance updates the treasury balance within a transaction.
func (r *TreasuryRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, address string, balance uint64) error {
	query := `UPDATE treasuries SET balance = $1, updated_at = NOW() WHERE address = $2`

	tag, err := tx.Exec(ctx, query, int64(balance), address)
	if err != nil {
		return fmt.Errorf("update treasury balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("treasury not found: %s", address)
	}
	return nil
}

func scanTreasury(row pgx.Row) (*domain.Treasury, error) {
	t := &domain.Treasury{}
	var balance int64
	var bump int16
	err := row.Scan(&t.Address, &balance, &bump, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan treasury: %w", err)
	}
	t.Balance = uint64(balance)
	t.Bump = byte(bump)
	return t, nil
}
