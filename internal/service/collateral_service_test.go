package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"collateral-ledger/internal/core/domain"
	"collateral-ledger/internal/core/ports/mocks"
	"collateral-ledger/pkg/apperror"
	"collateral-ledger/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testFeedID      = "ef0d8b614545449452e9f8d4623e34ade2ba2ac67362100e27457bf6fc8894c4"
	testMaxPriceAge = 60 * time.Second
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// failingCommitTx fails at commit time so nothing persists.
type failingCommitTx struct{ pgx.Tx }

func (m *failingCommitTx) Rollback(_ context.Context) error { return nil }
func (m *failingCommitTx) Commit(_ context.Context) error   { return errors.New("commit failed") }

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

func testLedgerMetrics() *metrics.Ledger {
	return metrics.NewLedger(prometheus.NewRegistry())
}

type collateralTestDeps struct {
	svc          *CollateralServiceImpl
	spendingRepo *mocks.MockSpendingAccountRepository
	yieldRepo    *mocks.MockYieldAccountRepository
	vaultRepo    *mocks.MockVaultRepository
	treasuryRepo *mocks.MockTreasuryRepository
	transactor   *mocks.MockDBTransactor
	oracle       *mocks.MockPriceOracle
	ctrl         *gomock.Controller
}

func setupCollateralService(t *testing.T) *collateralTestDeps {
	ctrl := gomock.NewController(t)
	d := &collateralTestDeps{
		spendingRepo: mocks.NewMockSpendingAccountRepository(ctrl),
		yieldRepo:    mocks.NewMockYieldAccountRepository(ctrl),
		vaultRepo:    mocks.NewMockVaultRepository(ctrl),
		treasuryRepo: mocks.NewMockTreasuryRepository(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		oracle:       mocks.NewMockPriceOracle(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewCollateralService(
		d.spendingRepo, d.yieldRepo, d.vaultRepo, d.treasuryRepo,
		d.transactor, d.oracle, testFeedID, testMaxPriceAge,
		testLedgerMetrics(), zerolog.Nop(),
	)
	return d
}

func freshPrice(price int64, expo int32) *domain.PriceSnapshot {
	return &domain.PriceSnapshot{
		FeedID:      testFeedID,
		Price:       price,
		Conf:        100,
		Expo:        expo,
		PublishedAt: time.Now().UTC(),
	}
}

func testSpendingAccount(ownerID uuid.UUID, limit, spent uint64) *domain.SpendingAccount {
	return &domain.SpendingAccount{
		Address:       domain.DeriveAddress(domain.RoleSpending, ownerID, domain.DefaultBump),
		OwnerID:       ownerID,
		SpendingLimit: limit,
		AmountSpent:   spent,
		Bump:          domain.DefaultBump,
	}
}

func testYieldAccount(ownerID uuid.UUID, staked uint64) *domain.YieldAccount {
	return &domain.YieldAccount{
		Address:      domain.DeriveAddress(domain.RoleYield, ownerID, domain.DefaultBump),
		OwnerID:      ownerID,
		StakedAmount: staked,
		Bump:         domain.DefaultBump,
	}
}

func testVault(ownerID uuid.UUID, balance uint64) *domain.Vault {
	return &domain.Vault{
		Address: domain.DeriveAddress(domain.RoleVault, ownerID, domain.DefaultBump),
		OwnerID: ownerID,
		Balance: balance,
		Bump:    domain.DefaultBump,
	}
}

func testTreasury(balance uint64) *domain.Treasury {
	return &domain.Treasury{
		Address: domain.TreasuryAddress(domain.DefaultBump),
		Balance: balance,
		Bump:    domain.DefaultBump,
	}
}

// ==================== Position Tests ====================

func TestCollateralService_Position_Healthy(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()

	// 1 unit staked at $60,000 with expo -8 is worth 6,000,000 cents.
	// Debt of 50,000 cents puts the ratio at 12000 percent.
	d.spendingRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testSpendingAccount(ownerID, 100_000, 50_000), nil)
	d.yieldRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testYieldAccount(ownerID, 1_000_000_000), nil)
	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)

	report, err := d.svc.Position(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, uint64(6_000_000), report.StakedValueCents)
	assert.Equal(t, uint64(12000), report.CollateralRatio)
	assert.True(t, report.Healthy)
	assert.Equal(t, "60000.00", report.StakedValueUSD)
	assert.Equal(t, "500.00", report.DebtUSD)
}

func TestCollateralService_Position_ZeroDebtIsHealthy(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()

	d.spendingRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testSpendingAccount(ownerID, 100_000, 0), nil)
	d.yieldRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testYieldAccount(ownerID, 1_000_000_000), nil)
	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)

	report, err := d.svc.Position(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), report.CollateralRatio)
	assert.True(t, report.Healthy)
}

func TestCollateralService_Position_OracleFailurePropagates(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()

	d.spendingRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testSpendingAccount(ownerID, 100_000, 50_000), nil)
	d.yieldRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testYieldAccount(ownerID, 1_000_000_000), nil)
	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).
		Return(nil, apperror.ErrStaleOrMismatchedPrice(errors.New("update too old")))

	report, err := d.svc.Position(ctx, ownerID)
	assert.Nil(t, report)
	assertAppError(t, err, "ORCL_001")
}

func TestCollateralService_Position_TamperedAddress(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()

	tampered := testSpendingAccount(ownerID, 100_000, 50_000)
	tampered.Address = "deadbeef"
	d.spendingRepo.EXPECT().GetByOwner(ctx, ownerID).Return(tampered, nil)
	d.yieldRepo.EXPECT().GetByOwner(ctx, ownerID).Return(testYieldAccount(ownerID, 1_000_000_000), nil)

	report, err := d.svc.Position(ctx, ownerID)
	assert.Nil(t, report)
	assertAppError(t, err, "AUTH_001")
}

// ==================== Liquidate Tests ====================

func TestCollateralService_Liquidate_HealthyNoOp(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.spendingRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testSpendingAccount(ownerID, 3_000_000, 2_000_000), nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testYieldAccount(ownerID, 1_000_000_000), nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testVault(ownerID, 500_000_000), nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(testTreasury(10_000_000_000), nil)

	// Ratio is 6,000,000 * 100 / 2,000,000 = 300: healthy, no mutation.
	report, err := d.svc.Liquidate(ctx, ownerID)
	require.NoError(t, err)
	assert.False(t, report.Liquidated)
	assert.Equal(t, uint64(300), report.RatioBefore)
	assert.Equal(t, uint64(300), report.RatioAfter)
	assert.Zero(t, report.UnitsLiquidated)
}

func TestCollateralService_Liquidate_Undercollateralized(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	spending := testSpendingAccount(ownerID, 6_000_000, 5_500_000)
	yield := testYieldAccount(ownerID, 1_000_000_000)
	vault := testVault(ownerID, 200_000_000)
	treasury := testTreasury(10_000_000_000)

	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.spendingRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(spending, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(yield, nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(vault, nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(treasury, nil)

	// Value 6,000,000 cents vs debt 5,500,000: ratio 109, below 120.
	// Repay 1,500,000 cents, liquidate 250,000,000 units.
	d.treasuryRepo.EXPECT().UpdateBalance(ctx, tx, treasury.Address, uint64(9_750_000_000)).Return(nil)
	d.vaultRepo.EXPECT().UpdateBalance(ctx, tx, vault.Address, uint64(450_000_000)).Return(nil)
	d.yieldRepo.EXPECT().UpdateStakedAmount(ctx, tx, yield.Address, uint64(750_000_000)).Return(nil)
	d.spendingRepo.EXPECT().UpdateAmountSpent(ctx, tx, spending.Address, uint64(4_000_000)).Return(nil)

	report, err := d.svc.Liquidate(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, report.Liquidated)
	assert.Equal(t, uint64(109), report.RatioBefore)
	assert.Equal(t, uint64(250_000_000), report.UnitsLiquidated)
	assert.Equal(t, uint64(1_500_000), report.DebtRepaidCents)
	assert.Greater(t, report.RatioAfter, report.RatioBefore)
}

func TestCollateralService_Liquidate_TreasuryShortfallAborts(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.spendingRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testSpendingAccount(ownerID, 6_000_000, 5_500_000), nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testYieldAccount(ownerID, 1_000_000_000), nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testVault(ownerID, 200_000_000), nil)
	// Treasury holds fewer units than the 250,000,000 the rebalance needs.
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(testTreasury(100_000_000), nil)

	// No Update expectations: nothing may be written.
	report, err := d.svc.Liquidate(ctx, ownerID)
	assert.Nil(t, report)
	assertAppError(t, err, "FUND_001")
}

func TestCollateralService_Liquidate_WriteFailureAborts(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	spending := testSpendingAccount(ownerID, 6_000_000, 5_500_000)
	yield := testYieldAccount(ownerID, 1_000_000_000)
	vault := testVault(ownerID, 200_000_000)
	treasury := testTreasury(10_000_000_000)

	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.spendingRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(spending, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(yield, nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(vault, nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(treasury, nil)

	d.treasuryRepo.EXPECT().UpdateBalance(ctx, tx, treasury.Address, uint64(9_750_000_000)).Return(nil)
	d.vaultRepo.EXPECT().UpdateBalance(ctx, tx, vault.Address, uint64(450_000_000)).
		Return(errors.New("connection reset"))

	report, err := d.svc.Liquidate(ctx, ownerID)
	assert.Nil(t, report)
	assertAppError(t, err, "SYS_001")
}

func TestCollateralService_Liquidate_CommitFailureAborts(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &failingCommitTx{}

	spending := testSpendingAccount(ownerID, 6_000_000, 5_500_000)
	yield := testYieldAccount(ownerID, 1_000_000_000)
	vault := testVault(ownerID, 200_000_000)
	treasury := testTreasury(10_000_000_000)

	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).Return(freshPrice(6_000_000_000_000, -8), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.spendingRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(spending, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(yield, nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(vault, nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(treasury, nil)

	d.treasuryRepo.EXPECT().UpdateBalance(ctx, tx, treasury.Address, uint64(9_750_000_000)).Return(nil)
	d.vaultRepo.EXPECT().UpdateBalance(ctx, tx, vault.Address, uint64(450_000_000)).Return(nil)
	d.yieldRepo.EXPECT().UpdateStakedAmount(ctx, tx, yield.Address, uint64(750_000_000)).Return(nil)
	d.spendingRepo.EXPECT().UpdateAmountSpent(ctx, tx, spending.Address, uint64(4_000_000)).Return(nil)

	report, err := d.svc.Liquidate(ctx, ownerID)
	assert.Nil(t, report)
	assertAppError(t, err, "SYS_001")
}

func TestCollateralService_Liquidate_StalePriceBlocksEvaluation(t *testing.T) {
	d := setupCollateralService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()

	d.oracle.EXPECT().GetPrice(ctx, testFeedID, testMaxPriceAge).
		Return(nil, apperror.ErrStaleOrMismatchedPrice(errors.New("update too old")))

	report, err := d.svc.Liquidate(ctx, ownerID)
	assert.Nil(t, report)
	assertAppError(t, err, "ORCL_001")
}
