package postgres

import (
	"context"
	"errors"
	"fmt"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantAccountRepo implements ports.MerchantAccountRepository.
type MerchantAccountRepo struct {
	pool Pool
}

// NewMerchantAccountRepo creates a new MerchantAccountRepo.
func NewMerchantAccountRepo(pool Pool) *MerchantAccountRepo {
	return &MerchantAccountRepo{pool: pool}
}

// Create inserts a new merchant account.
func (r *MerchantAccountRepo) Create(ctx context.Context, m *domain.MerchantAccount) error {
	query := `INSERT INTO merchant_accounts (address, owner_id, name, bump, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, m.Address, m.OwnerID, m.Name, int16(m.Bump), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert merchant account: %w", err)
	}
	return nil
}

// GetByAuthority fetches a merchant account by its authority.
func (r *MerchantAccountRepo) GetByAuthority(ctx context.Context, authority uuid.UUID) (*domain.MerchantAccount, error) {
	query := `SELECT address, owner_id, name, bump, created_at
		FROM merchant_accounts WHERE owner_id = $1`

	m := &domain.MerchantAccount{}
	var bump int16
	err := r.pool.QueryRow(ctx, query, authority).Scan(&m.Address, &m.OwnerID, &m.Name, &bump, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant account by authority: %w", err)
	}
	m.Bump = byte(bump)
	return m, nil
}
