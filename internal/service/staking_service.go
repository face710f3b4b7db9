package service

import (
	"context"
	"fmt"
	"time"

	"collateral-ledger/internal/core/domain"
	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StakingServiceImpl implements ports.StakingService.
type StakingServiceImpl struct {
	vaultRepo    ports.VaultRepository
	treasuryRepo ports.TreasuryRepository
	yieldRepo    ports.YieldAccountRepository
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewStakingService creates a new StakingServiceImpl.
func NewStakingService(
	vaultRepo ports.VaultRepository,
	treasuryRepo ports.TreasuryRepository,
	yieldRepo ports.YieldAccountRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *StakingServiceImpl {
	return &StakingServiceImpl{
		vaultRepo:    vaultRepo,
		treasuryRepo: treasuryRepo,
		yieldRepo:    yieldRepo,
		transactor:   transactor,
		log:          log,
	}
}

// InitializeTreasury creates the singleton treasury record.
func (s *StakingServiceImpl) InitializeTreasury(ctx context.Context) (*domain.Treasury, error) {
	existing, err := s.treasuryRepo.Get(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check treasury: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("treasury")
	}

	now := time.Now().UTC()
	treasury := &domain.Treasury{
		Address:   domain.TreasuryAddress(domain.DefaultBump),
		Balance:   0,
		Bump:      domain.DefaultBump,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.treasuryRepo.Create(ctx, treasury); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create treasury: %w", err))
	}

	s.log.Info().Str("address", treasury.Address).Msg("treasury initialized")
	return treasury, nil
}

// InitializeYieldAccount creates the owner's yield account with zero stake.
func (s *StakingServiceImpl) InitializeYieldAccount(ctx context.Context, ownerID uuid.UUID) (*domain.YieldAccount, error) {
	existing, err := s.yieldRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check yield account: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("yield account")
	}

	now := time.Now().UTC()
	account := &domain.YieldAccount{
		Address:      domain.DeriveAddress(domain.RoleYield, ownerID, domain.DefaultBump),
		OwnerID:      ownerID,
		StakedAmount: 0,
		Bump:         domain.DefaultBump,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.yieldRepo.Create(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create yield account: %w", err))
	}

	s.log.Info().Str("owner_id", ownerID.String()).Msg("yield account initialized")
	return account, nil
}

// Stake moves amount from the owner's vault into the treasury and mirrors
// it into the yield account. All three effects commit together.
func (s *StakingServiceImpl) Stake(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.YieldAccount, error) {
	if amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	yield, err := s.yieldRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock yield account: %w", err))
	}
	if yield == nil {
		return nil, apperror.ErrNotFound("yield account")
	}
	vault, err := s.vaultRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vault: %w", err))
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	treasury, err := s.treasuryRepo.GetForUpdate(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock treasury: %w", err))
	}
	if treasury == nil {
		return nil, apperror.ErrNotFound("treasury")
	}
	if !yield.VerifyAddress() || !vault.VerifyAddress() || !treasury.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	if vault.Balance < amount {
		return nil, apperror.ErrInsufficientFunds()
	}
	newTreasury := treasury.Balance + amount
	if newTreasury < treasury.Balance {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("treasury balance overflow"))
	}
	newStaked := yield.StakedAmount + amount
	if newStaked < yield.StakedAmount {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("staked amount overflow"))
	}

	if err := s.vaultRepo.UpdateBalance(ctx, dbTx, vault.Address, vault.Balance-amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit vault: %w", err))
	}
	if err := s.treasuryRepo.UpdateBalance(ctx, dbTx, treasury.Address, newTreasury); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit treasury: %w", err))
	}
	if err := s.yieldRepo.UpdateStakedAmount(ctx, dbTx, yield.Address, newStaked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("increase staked amount: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	yield.StakedAmount = newStaked
	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("amount", amount).
		Uint64("staked_amount", newStaked).
		Msg("stake settled")
	return yield, nil
}

// Unstake reverses a stake: treasury pays the vault back and the yield
// account decreases.
func (s *StakingServiceImpl) Unstake(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.YieldAccount, error) {
	if amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	yield, err := s.yieldRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock yield account: %w", err))
	}
	if yield == nil {
		return nil, apperror.ErrNotFound("yield account")
	}
	vault, err := s.vaultRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vault: %w", err))
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	treasury, err := s.treasuryRepo.GetForUpdate(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock treasury: %w", err))
	}
	if treasury == nil {
		return nil, apperror.ErrNotFound("treasury")
	}
	if !yield.VerifyAddress() || !vault.VerifyAddress() || !treasury.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	if yield.StakedAmount < amount {
		return nil, apperror.ErrInsufficientFunds()
	}
	if treasury.Balance < amount {
		return nil, apperror.ErrInsufficientFunds()
	}
	newVault := vault.Balance + amount
	if newVault < vault.Balance {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("vault balance overflow"))
	}

	if err := s.treasuryRepo.UpdateBalance(ctx, dbTx, treasury.Address, treasury.Balance-amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit treasury: %w", err))
	}
	if err := s.vaultRepo.UpdateBalance(ctx, dbTx, vault.Address, newVault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit vault: %w", err))
	}
	if err := s.yieldRepo.UpdateStakedAmount(ctx, dbTx, yield.Address, yield.StakedAmount-amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("decrease staked amount: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	yield.StakedAmount -= amount
	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("amount", amount).
		Uint64("staked_amount", yield.StakedAmount).
		Msg("unstake settled")
	return yield, nil
}
