package ports

import (
	"context"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for owner identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// VaultRepository defines persistence operations for vaults.
// Methods accepting pgx.Tx are used inside transaction blocks for
// pessimistic locking; every balance mutation goes through a locked row.
type VaultRepository interface {
	Create(ctx context.Context, vault *domain.Vault) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error)
	GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Vault, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, address string, balance uint64) error
}

// TreasuryRepository defines persistence operations for the singleton
// treasury record.
type TreasuryRepository interface {
	Create(ctx context.Context, treasury *domain.Treasury) error
	Get(ctx context.Context) (*domain.Treasury, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Treasury, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, address string, balance uint64) error
}

// YieldAccountRepository defines persistence operations for yield accounts.
type YieldAccountRepository interface {
	Create(ctx context.Context, account *domain.YieldAccount) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.YieldAccount, error)
	GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.YieldAccount, error)
	UpdateStakedAmount(ctx context.Context, tx pgx.Tx, address string, stakedAmount uint64) error
}

// SpendingAccountRepository defines persistence operations for spending
// accounts.
type SpendingAccountRepository interface {
	Create(ctx context.Context, account *domain.SpendingAccount) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error)
	GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.SpendingAccount, error)
	UpdateLimit(ctx context.Context, tx pgx.Tx, address string, spendingLimit uint64) error
	UpdateAmountSpent(ctx context.Context, tx pgx.Tx, address string, amountSpent uint64) error
}

// MerchantAccountRepository defines persistence operations for merchant
// accounts. The authority is immutable after creation.
type MerchantAccountRepository interface {
	Create(ctx context.Context, merchant *domain.MerchantAccount) error
	GetByAuthority(ctx context.Context, authority uuid.UUID) (*domain.MerchantAccount, error)
}

// DBTransactor provides database transaction management. Every mutating
// operation runs inside one transaction: commit all or roll back all.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
