package postgres

import (
	"context"
	"errors"
	"fmt"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SpendingAccountRepo implements ports.SpendingAccountRepository.
type SpendingAccountRepo struct {
	pool Pool
}

// NewSpendingAccountRepo creates a new SpendingAccountRepo.
func NewSpendingAccountRepo(pool Pool) *SpendingAccountRepo {
	return &SpendingAccountRepo{pool: pool}
}

// Create inserts a new spending account.
func (r *SpendingAccountRepo) Create(ctx context.Context, a *domain.SpendingAccount) error {
	query := `INSERT INTO spending_accounts (address, owner_id, spending_limit, amount_spent, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		a.Address, a.OwnerID, int64(a.SpendingLimit), int64(a.AmountSpent),
		int16(a.Bump), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert spending account: %w", err)
	}
	return nil
}

// GetByOwner fetches a spending account by owner (non-locking read).
func (r *SpendingAccountRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	query := `SELECT address, owner_id, spending_limit, amount_spent, bump, created_at, updated_at
		FROM spending_accounts WHERE owner_id = $1`

	return scanSpendingAccount(r.pool.QueryRow(ctx, query, ownerID))
}

// GetByOwnerForUpdate fetches a spending account by owner with pessimistic
// locking. This MUST be called within a transaction.
func (r *SpendingAccountRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	query := `SELECT address, owner_id, spending_limit, amount_spent, bump, created_at, updated_at
		FROM spending_accounts WHERE owner_id = $1 FOR UPDATE`

	return scanSpendingAccount(tx.QueryRow(ctx, query, ownerID))
}

// UpdateLimit updates the spending limit within a transaction.
func (r *SpendingAccountRepo) UpdateLimit(ctx context.Context, tx pgx.Tx, address string, spendingLimit uint64) error {
	query := `UPDATE spending_accounts SET spending_limit = $1, updated_at = NOW() WHERE address = $2`

	tag, err := tx.Exec(ctx, query, int64(spendingLimit), address)
	if err != nil {
		return fmt.Errorf("update spending limit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("spending account not found: %s", address)
	}
	return nil
}

// UpdateAmountSpent updates the spend tracker within a transaction.
func (r *SpendingAccountRepo) UpdateAmountSpent(ctx context.Context, tx pgx.Tx, address string, amountSpent uint64) error {
	query := `UPDATE spending_accounts SET amount_spent = $1, updated_at = NOW() WHERE address = $2`

	tag, err := tx.Exec(ctx, query, int64(amountSpent), address)
	if err != nil {
		return fmt.Errorf("update amount spent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("spending account not found: %s", address)
	}
	return nil
}

func scanSpendingAccount(row pgx.Row) (*domain.SpendingAccount, error) {
	a := &domain.SpendingAccount{}
	var limit, spent int64
	var bump int16
	err := row.Scan(&a.Address, &a.OwnerID, &limit, &spent, &bump, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan spending account: %w", err)
	}
	a.SpendingLimit = uint64(limit)
	a.AmountSpent = uint64(spent)
	a.Bump = byte(bump)
	return a, nil
}
