package service

import (
	"context"
	"testing"

	"collateral-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stakingTestDeps struct {
	svc          *StakingServiceImpl
	vaultRepo    *mocks.MockVaultRepository
	treasuryRepo *mocks.MockTreasuryRepository
	yieldRepo    *mocks.MockYieldAccountRepository
	transactor   *mocks.MockDBTransactor
	ctrl         *gomock.Controller
}

func setupStakingService(t *testing.T) *stakingTestDeps {
	ctrl := gomock.NewController(t)
	d := &stakingTestDeps{
		vaultRepo:    mocks.NewMockVaultRepository(ctrl),
		treasuryRepo: mocks.NewMockTreasuryRepository(ctrl),
		yieldRepo:    mocks.NewMockYieldAccountRepository(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewStakingService(d.vaultRepo, d.treasuryRepo, d.yieldRepo, d.transactor, zerolog.Nop())
	return d
}

func TestStakingService_InitializeTreasury_Singleton(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.treasuryRepo.EXPECT().Get(ctx).Return(nil, nil)
	d.treasuryRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	treasury, err := d.svc.InitializeTreasury(ctx)
	require.NoError(t, err)
	assert.Zero(t, treasury.Balance)
	assert.True(t, treasury.VerifyAddress())

	d2 := setupStakingService(t)
	defer d2.ctrl.Finish()
	d2.treasuryRepo.EXPECT().Get(ctx).Return(treasury, nil)

	dup, err := d2.svc.InitializeTreasury(ctx)
	assert.Nil(t, dup)
	assertAppError(t, err, "FUND_005")
}

func TestStakingService_InitializeYieldAccount(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()

	d.yieldRepo.EXPECT().GetByOwner(ctx, ownerID).Return(nil, nil)
	d.yieldRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	account, err := d.svc.InitializeYieldAccount(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, account.OwnerID)
	assert.Zero(t, account.StakedAmount)
	assert.True(t, account.VerifyAddress())
}

func TestStakingService_Stake_Success(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	yield := testYieldAccount(ownerID, 100)
	vault := testVault(ownerID, 5_000_000)
	treasury := testTreasury(10_000_000)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(yield, nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(vault, nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(treasury, nil)

	d.vaultRepo.EXPECT().UpdateBalance(ctx, tx, vault.Address, uint64(3_000_000)).Return(nil)
	d.treasuryRepo.EXPECT().UpdateBalance(ctx, tx, treasury.Address, uint64(12_000_000)).Return(nil)
	d.yieldRepo.EXPECT().UpdateStakedAmount(ctx, tx, yield.Address, uint64(2_000_100)).Return(nil)

	updated, err := d.svc.Stake(ctx, ownerID, 2_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_100), updated.StakedAmount)
}

func TestStakingService_Stake_InsufficientVault(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testYieldAccount(ownerID, 0), nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testVault(ownerID, 1_000_000), nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(testTreasury(0), nil)

	updated, err := d.svc.Stake(ctx, ownerID, 1_000_001)
	assert.Nil(t, updated)
	assertAppError(t, err, "FUND_001")
}

func TestStakingService_Stake_ZeroAmount(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	updated, err := d.svc.Stake(context.Background(), uuid.New(), 0)
	assert.Nil(t, updated)
	assertAppError(t, err, "FUND_003")
}

func TestStakingService_Unstake_Success(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	yield := testYieldAccount(ownerID, 2_000_000)
	vault := testVault(ownerID, 1_000_000)
	treasury := testTreasury(10_000_000)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(yield, nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(vault, nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(treasury, nil)

	d.treasuryRepo.EXPECT().UpdateBalance(ctx, tx, treasury.Address, uint64(9_500_000)).Return(nil)
	d.vaultRepo.EXPECT().UpdateBalance(ctx, tx, vault.Address, uint64(1_500_000)).Return(nil)
	d.yieldRepo.EXPECT().UpdateStakedAmount(ctx, tx, yield.Address, uint64(1_500_000)).Return(nil)

	updated, err := d.svc.Unstake(ctx, ownerID, 500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000), updated.StakedAmount)
}

func TestStakingService_Unstake_MoreThanStaked(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testYieldAccount(ownerID, 100), nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testVault(ownerID, 0), nil)
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(testTreasury(10_000_000), nil)

	updated, err := d.svc.Unstake(ctx, ownerID, 101)
	assert.Nil(t, updated)
	assertAppError(t, err, "FUND_001")
}

func TestStakingService_Unstake_TreasuryShortfall(t *testing.T) {
	d := setupStakingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.yieldRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testYieldAccount(ownerID, 5_000_000), nil)
	d.vaultRepo.EXPECT().GetByOwnerForUpdate(ctx, tx, ownerID).Return(testVault(ownerID, 0), nil)
	// The pool was drained by liquidations of other owners.
	d.treasuryRepo.EXPECT().GetForUpdate(ctx, tx).Return(testTreasury(1_000_000), nil)

	updated, err := d.svc.Unstake(ctx, ownerID, 2_000_000)
	assert.Nil(t, updated)
	assertAppError(t, err, "FUND_001")
}
