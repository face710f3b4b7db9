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

// VaultServiceImpl implements ports.VaultService.
type VaultServiceImpl struct {
	vaultRepo  ports.VaultRepository
	transactor ports.DBTransactor
	bridge     ports.SettlementBridge
	minReserve uint64
	log        zerolog.Logger
}

// NewVaultService creates a new VaultServiceImpl. minReserve is the floor
// the tracked balance may never drop below on withdrawal; it models the
// persistence threshold of the vault's storage footprint.
func NewVaultService(
	vaultRepo ports.VaultRepository,
	transactor ports.DBTransactor,
	bridge ports.SettlementBridge,
	minReserve uint64,
	log zerolog.Logger,
) *VaultServiceImpl {
	return &VaultServiceImpl{
		vaultRepo:  vaultRepo,
		transactor: transactor,
		bridge:     bridge,
		minReserve: minReserve,
		log:        log,
	}
}

// Initialize creates the owner's vault with a zero balance.
func (s *VaultServiceImpl) Initialize(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error) {
	existing, err := s.vaultRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check vault: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("vault")
	}

	now := time.Now().UTC()
	vault := &domain.Vault{
		Address:   domain.DeriveAddress(domain.RoleVault, ownerID, domain.DefaultBump),
		OwnerID:   ownerID,
		Balance:   0,
		Bump:      domain.DefaultBump,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.vaultRepo.Create(ctx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create vault: %w", err))
	}

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Str("address", vault.Address).
		Msg("vault initialized")
	return vault, nil
}

// Get returns the owner's vault.
func (s *VaultServiceImpl) Get(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error) {
	vault, err := s.vaultRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get vault: %w", err))
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	if !vault.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}
	return vault, nil
}

// Deposit moves amount from the owner's funding source into the vault and
// credits the tracked balance. A failed inbound transfer aborts the whole
// operation.
func (s *VaultServiceImpl) Deposit(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.Vault, error) {
	if amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.vaultRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vault: %w", err))
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	if !vault.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	newBalance := vault.Balance + amount
	if newBalance < vault.Balance {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("vault balance overflow"))
	}

	if err := s.bridge.Transfer(ctx, ports.TransferRequest{
		From:   ownerID.String(),
		To:     vault.Address,
		Amount: amount,
		Memo:   "vault deposit",
	}); err != nil {
		return nil, apperror.ErrSettlementFailed(err)
	}

	vault.Balance = newBalance
	if err := s.vaultRepo.UpdateBalance(ctx, dbTx, vault.Address, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit vault: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("amount", amount).
		Uint64("balance", newBalance).
		Msg("deposit credited")
	return vault, nil
}

// Withdraw debits the tracked balance and transfers amount back to the
// owner, signed on behalf of the vault's derived address. The tracked
// balance may not drop below the minimum reserve floor even when it would
// stay non-negative.
func (s *VaultServiceImpl) Withdraw(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.Vault, error) {
	if amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.vaultRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vault: %w", err))
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	if !vault.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	if vault.Balance < amount {
		return nil, apperror.ErrInsufficientFunds()
	}
	newBalance := vault.Balance - amount
	if newBalance < s.minReserve {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.bridge.Transfer(ctx, ports.TransferRequest{
		From:   vault.Address,
		To:     ownerID.String(),
		Amount: amount,
		Memo:   "vault withdrawal",
	}); err != nil {
		return nil, apperror.ErrSettlementFailed(err)
	}

	vault.Balance = newBalance
	if err := s.vaultRepo.UpdateBalance(ctx, dbTx, vault.Address, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit vault: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("amount", amount).
		Uint64("balance", newBalance).
		Msg("withdrawal settled")
	return vault, nil
}
