package postgres

import (
	"context"
	"errors"
	"fmt"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// YieldAccountRepo implements ports.YieldAccountRepository.
type YieldAccountRepo struct {
	pool Pool
}

// NewYieldAccountRepo creates a new YieldAccountRepo.
func NewYieldAccountRepo(pool Pool) *YieldAccountRepo {
	return &YieldAccountRepo{pool: pool}
}

// Create inserts a new yield account.
func (r *YieldAccountRepo) Create(ctx context.Context, a *domain.YieldAccount) error {
	query := `INSERT INTO yield_accounts (address, owner_id, staked_amount, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		a.Address, a.OwnerID, int64(a.StakedAmount), int16(a.Bump), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert yield account: %w", err)
	}
	return nil
}

// GetByOwner fetches a yield account by owner (non-locking read).
func (r *YieldAccountRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.YieldAccount, error) {
	query := `SELECT address, owner_id, staked_amount, bump, created_at, updated_at
		FROM yield_accounts WHERE owner_id = $1`

	return scanYieldAccount(r.pool.QueryRow(ctx, query, ownerID))
}

// GetByOwnerForUpdate fetches a yield account by owner with pessimistic
// locking. This MUST be called within a transaction.
func (r *YieldAccountRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.YieldAccount, error) {
	query := `SELECT address, owner_id, staked_amount, bump, created_at, updated_at
		FROM yield_accounts WHERE owner_id = $1 FOR UPDATE`

	return scanYieldAccount(tx.QueryRow(ctx, query, ownerID))
}

// UpdateStakedAmount updates the staked amount within a transaction.
func (r *YieldAccountRepo) UpdateStakedAmount(ctx context.Context, tx pgx.Tx, address string, stakedAmount uint64) error {
	query := `UPDATE yield_accounts SET staked_amount = $1, updated_at = NOW() WHERE address = $2`

	tag, err := tx.Exec(ctx, query, int64(stakedAmount), address)
	if err != nil {
		return fmt.Errorf("update staked amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("yield account not found: %s", address)
	}
	return nil
}

func scanYieldAccount(row pgx.Row) (*domain.YieldAccount, error) {
	a := &domain.YieldAccount{}
	var staked int64
	var bump int16
	err := row.Scan(&a.Address, &a.OwnerID, &staked, &bump, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan yield account: %w", err)
	}
	a.StakedAmount = uint64(staked)
	a.Bump = byte(bump)
	return a, nil
}
