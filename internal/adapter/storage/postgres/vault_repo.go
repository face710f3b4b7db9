package postgres

import (
	"context"
	"errors"
	"fmt"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Balances are stored as BIGINT; values never approach the sign bit in
// practice and the domain layer rejects negative amounts outright.

// VaultRepo implements ports.VaultRepository.
type VaultRepo struct {
	pool Pool
}

// NewVaultRepo creates a new VaultRepo.
func NewVaultRepo(pool Pool) *VaultRepo {
	return &VaultRepo{pool: pool}
}

// Create inserts a new vault.
func (r *VaultRepo) Create(ctx context.Context, v *domain.Vault) error {
	query := `INSERT INTO vaults (address, owner_id, balance, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		v.Address, v.OwnerID, int64(v.Balance), int16(v.Bump), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vault: %w", err)
	}
	return nil
}

// GetByOwner fetches a vault by owner (non-locking read).
func (r *VaultRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error) {
	query := `SELECT address, owner_id, balance, bump, created_at, updated_at
		FROM vaults WHERE owner_id = $1`

	return scanVault(r.pool.QueryRow(ctx, query, ownerID))
}

// GetByOwnerForUpdate fetches a vault by owner with pessimistic locking.
// This MUST be called within a transaction.
func (r *VaultRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Vault, error) {
	query := `SELECT address, owner_id, balance, bump, created_at, updated_at
		FROM vaults WHERE owner_id = $1 FOR UPDATE`

	return scanVault(tx.QueryRow(ctx, query, ownerID))
}

// UpdateBalance updates a vault balance within a transaction.
func (r *VaultRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, address string, balance uint64) error {
	query := `UPDATE vaults SET balance = $1, updated_at = NOW() WHERE address = $2`

	tag, err := tx.Exec(ctx, query, int64(balance), address)
	if err != nil {
		return fmt.Errorf("update vault balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vault not found: %s", address)
	}
	return nil
}

func scanVault(row pgx.Row) (*domain.Vault, error) {
	v := &domain.Vault{}
	var balance int64
	var bump int16
	err := row.Scan(&v.Address, &v.OwnerID, &balance, &bump, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	v.Balance = uint64(balance)
	v.Bump = byte(bump)
	return v, nil
}
