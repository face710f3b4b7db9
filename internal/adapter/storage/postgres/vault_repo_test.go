package postgres

import (
	"context"
	"testing"
	"time"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault() *domain.Vault {
	ownerID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Vault{
		Address:   domain.DeriveAddress(domain.RoleVault, ownerID, domain.DefaultBump),
		OwnerID:   ownerID,
		Balance:   5_000_000,
		Bump:      domain.DefaultBump,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func vaultColumns() []string {
	return []string{"address", "owner_id", "balance", "bump", "created_at", "updated_at"}
}

func vaultRow(v *domain.Vault) *pgxmock.Rows {
	return pgxmock.NewRows(vaultColumns()).AddRow(
		v.Address, v.OwnerID, int64(v.Balance), int16(v.Bump), v.CreatedAt, v.UpdatedAt,
	)
}

func TestVaultRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectExec("INSERT INTO vaults").
		WithArgs(v.Address, v.OwnerID, int64(v.Balance), int16(v.Bump), v.CreatedAt, v.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), v)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_GetByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectQuery("SELECT .+ FROM vaults WHERE owner_id").
		WithArgs(v.OwnerID).
		WillReturnRows(vaultRow(v))

	result, err := repo.GetByOwner(context.Background(), v.OwnerID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, v.Address, result.Address)
	assert.Equal(t, v.Balance, result.Balance)
	assert.Equal(t, v.Bump, result.Bump)
	assert.True(t, result.VerifyAddress())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_GetByOwner_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM vaults WHERE owner_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(vaultColumns()))

	result, err := repo.GetByOwner(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_GetByOwnerForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM vaults WHERE owner_id .+ FOR UPDATE").
		WithArgs(v.OwnerID).
		WillReturnRows(vaultRow(v))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByOwnerForUpdate(context.Background(), tx, v.OwnerID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, v.Balance, result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vaults SET balance").
		WithArgs(int64(7_500_000), v.Address).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, v.Address, 7_500_000)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_UpdateBalance_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vaults SET balance").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, "missing", 100)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
