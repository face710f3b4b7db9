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

// SpendingServiceImpl implements ports.SpendingService.
type SpendingServiceImpl struct {
	spendingRepo ports.SpendingAccountRepository
	vaultRepo    ports.VaultRepository
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewSpendingService creates a new SpendingServiceImpl.
func NewSpendingService(
	spendingRepo ports.SpendingAccountRepository,
	vaultRepo ports.VaultRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *SpendingServiceImpl {
	return &SpendingServiceImpl{
		spendingRepo: spendingRepo,
		vaultRepo:    vaultRepo,
		transactor:   transactor,
		log:          log,
	}
}

// InitializeSpendingAccount creates the owner's spending account with zero
// limit and zero spend.
func (s *SpendingServiceImpl) InitializeSpendingAccount(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	existing, err := s.spendingRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check spending account: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("spending account")
	}

	now := time.Now().UTC()
	account := &domain.SpendingAccount{
		Address:       domain.DeriveAddress(domain.RoleSpending, ownerID, domain.DefaultBump),
		OwnerID:       ownerID,
		SpendingLimit: 0,
		AmountSpent:   0,
		Bump:          domain.DefaultBump,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.spendingRepo.Create(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create spending account: %w", err))
	}

	s.log.Info().Str("owner_id", ownerID.String()).Msg("spending account initialized")
	return account, nil
}

// UpdateSpendingLimit recomputes the limit as half the vault balance
// (50% loan-to-value). Recomputed on demand only, never automatically.
func (s *SpendingServiceImpl) UpdateSpendingLimit(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.spendingRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock spending account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("spending account")
	}
	vault, err := s.vaultRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vault: %w", err))
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	if !account.VerifyAddress() || !vault.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	account.SpendingLimit = vault.Balance / 2
	if err := s.spendingRepo.UpdateLimit(ctx, dbTx, account.Address, account.SpendingLimit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update spending limit: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("spending_limit", account.SpendingLimit).
		Msg("spending limit updated")
	return account, nil
}

// AuthorizeSpend reserves headroom against the spending limit.
func (s *SpendingServiceImpl) AuthorizeSpend(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.SpendingAccount, error) {
	if amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.spendingRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock spending account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("spending account")
	}
	if !account.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	available, ok := account.Available()
	if !ok {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("spending limit %d below amount spent %d", account.SpendingLimit, account.AmountSpent))
	}
	if amount > available {
		return nil, apperror.ErrSpendingLimitExceeded()
	}

	newSpent := account.AmountSpent + amount
	if newSpent < account.AmountSpent {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("amount spent overflow"))
	}
	account.AmountSpent = newSpent

	if err := s.spendingRepo.UpdateAmountSpent(ctx, dbTx, account.Address, newSpent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update amount spent: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("amount", amount).
		Uint64("amount_spent", newSpent).
		Msg("spend authorized")
	return account, nil
}

// ResetSpendTracker zeroes the amount spent unconditionally.
func (s *SpendingServiceImpl) ResetSpendTracker(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.spendingRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock spending account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("spending account")
	}
	if !account.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	account.AmountSpent = 0
	if err := s.spendingRepo.UpdateAmountSpent(ctx, dbTx, account.Address, 0); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reset amount spent: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("owner_id", ownerID.String()).Msg("spend tracker reset")
	return account, nil
}
