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

func newTestSpendingAccount() *domain.SpendingAccount {
	ownerID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.SpendingAccount{
		Address:       domain.DeriveAddress(domain.RoleSpending, ownerID, domain.DefaultBump),
		OwnerID:       ownerID,
		SpendingLimit: 1_000_000,
		AmountSpent:   250_000,
		Bump:          domain.DefaultBump,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func spendingColumns() []string {
	return []string{"address", "owner_id", "spending_limit", "amount_spent", "bump", "created_at", "updated_at"}
}

func spendingRow(a *domain.SpendingAccount) *pgxmock.Rows {
	return pgxmock.NewRows(spendingColumns()).AddRow(
		a.Address, a.OwnerID, int64(a.SpendingLimit), int64(a.AmountSpent),
		int16(a.Bump), a.CreatedAt, a.UpdatedAt,
	)
}

func TestSpendingAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSpendingAccountRepo(mock)
	a := newTestSpendingAccount()

	mock.ExpectExec("INSERT INTO spending_accounts").
		WithArgs(a.Address, a.OwnerID, int64(a.SpendingLimit), int64(a.AmountSpent),
			int16(a.Bump), a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendingAccountRepo_GetByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSpendingAccountRepo(mock)
	a := newTestSpendingAccount()

	mock.ExpectQuery("SELECT .+ FROM spending_accounts WHERE owner_id").
		WithArgs(a.OwnerID).
		WillReturnRows(spendingRow(a))

	result, err := repo.GetByOwner(context.Background(), a.OwnerID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.SpendingLimit, result.SpendingLimit)
	assert.Equal(t, a.AmountSpent, result.AmountSpent)
	assert.True(t, result.VerifyAddress())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendingAccountRepo_GetByOwner_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSpendingAccountRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM spending_accounts WHERE owner_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(spendingColumns()))

	result, err := repo.GetByOwner(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendingAccountRepo_UpdateLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSpendingAccountRepo(mock)
	a := newTestSpendingAccount()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE spending_accounts SET spending_limit").
		WithArgs(int64(2_000_000), a.Address).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateLimit(context.Background(), tx, a.Address, 2_000_000)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendingAccountRepo_UpdateAmountSpent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSpendingAccountRepo(mock)
	a := newTestSpendingAccount()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE spending_accounts SET amount_spent").
		WithArgs(int64(0), a.Address).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateAmountSpent(context.Background(), tx, a.Address, 0)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendingAccountRepo_UpdateAmountSpent_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSpendingAccountRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE spending_accounts SET amount_spent").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateAmountSpent(context.Background(), tx, "missing", 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
