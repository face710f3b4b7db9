package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"collateral-ledger/internal/core/domain"
	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/apperror"
	"collateral-ledger/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const settlementIdempotencyTTL = 24 * time.Hour

// PaymentServiceImpl implements ports.PaymentService.
type PaymentServiceImpl struct {
	spendingRepo ports.SpendingAccountRepository
	merchantRepo ports.MerchantAccountRepository
	transactor   ports.DBTransactor
	bridge       ports.SettlementBridge
	idempCache   ports.IdempotencyCache
	ledgerMx     *metrics.Ledger
	log          zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	spendingRepo ports.SpendingAccountRepository,
	merchantRepo ports.MerchantAccountRepository,
	transactor ports.DBTransactor,
	bridge ports.SettlementBridge,
	idempCache ports.IdempotencyCache,
	ledgerMx *metrics.Ledger,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		spendingRepo: spendingRepo,
		merchantRepo: merchantRepo,
		transactor:   transactor,
		bridge:       bridge,
		idempCache:   idempCache,
		ledgerMx:     ledgerMx,
		log:          log,
	}
}

// RegisterMerchant creates a merchant account with a bounded display name.
// The authority is immutable after creation.
func (s *PaymentServiceImpl) RegisterMerchant(ctx context.Context, authority uuid.UUID, name string) (*domain.MerchantAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxMerchantNameLen {
		return nil, apperror.Validation(fmt.Sprintf("merchant name must be 1-%d characters", domain.MaxMerchantNameLen))
	}

	existing, err := s.merchantRepo.GetByAuthority(ctx, authority)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check merchant account: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("merchant account")
	}

	merchant := &domain.MerchantAccount{
		Address:   domain.DeriveAddress(domain.RoleMerchant, authority, domain.DefaultBump),
		OwnerID:   authority,
		Name:      name,
		Bump:      domain.DefaultBump,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create merchant account: %w", err))
	}

	s.log.Info().
		Str("authority", authority.String()).
		Str("name", name).
		Msg("merchant account registered")
	return merchant, nil
}

// ProcessPayment settles a payment against the payer's spending account.
// The limit check runs before the destination check; a bridge failure rolls
// back the whole transaction including the amount_spent increment.
func (s *PaymentServiceImpl) ProcessPayment(ctx context.Context, req ports.PaymentRequest) (*ports.PaymentReceipt, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	idempKey := buildSettlementKey(req.OwnerID, req.ReferenceID)
	if req.ReferenceID != "" {
		cached, err := s.idempCache.Get(ctx, idempKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("idempotency check failed, continuing")
		}
		if cached != nil {
			return unmarshalReceipt(cached)
		}
	}

	merchant, err := s.merchantRepo.GetByAuthority(ctx, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get merchant account: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("merchant account")
	}
	if !merchant.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.spendingRepo.GetByOwnerForUpdate(ctx, dbTx, req.OwnerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock spending account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("spending account")
	}
	if !account.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	// Spending-limit check comes first; a payment over the limit fails
	// before the destination is even considered.
	available, ok := account.Available()
	if !ok {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("spending limit %d below amount spent %d", account.SpendingLimit, account.AmountSpent))
	}
	if req.Amount > available {
		return nil, apperror.ErrSpendingLimitExceeded()
	}

	newSpent := account.AmountSpent + req.Amount
	if newSpent < account.AmountSpent {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("amount spent overflow"))
	}
	if err := s.spendingRepo.UpdateAmountSpent(ctx, dbTx, account.Address, newSpent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update amount spent: %w", err))
	}

	// The payout destination must equal the merchant record's stored
	// authority; any other destination is a redirection attempt.
	destination := merchant.OwnerID.String()
	if req.Destination != "" && req.Destination != destination {
		return nil, apperror.ErrAuthorizationFault()
	}

	if err := s.bridge.Transfer(ctx, ports.TransferRequest{
		From:   req.OwnerID.String(),
		To:     destination,
		Amount: req.Amount,
		Memo:   "payment to " + merchant.Name,
	}); err != nil {
		s.ledgerMx.SettlementErrors.Inc()
		return nil, apperror.ErrSettlementFailed(err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	receipt := &ports.PaymentReceipt{
		ReferenceID:  req.ReferenceID,
		OwnerID:      req.OwnerID,
		MerchantID:   req.MerchantID,
		MerchantName: merchant.Name,
		Amount:       req.Amount,
		AmountSpent:  newSpent,
		SettledAt:    time.Now().UTC(),
	}

	if req.ReferenceID != "" {
		if data, err := json.Marshal(receipt); err == nil {
			if err := s.idempCache.Set(ctx, idempKey, data, settlementIdempotencyTTL); err != nil {
				s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache settlement receipt")
			}
		}
	}

	s.ledgerMx.PaymentsSettled.Inc()
	s.log.Info().
		Str("owner_id", req.OwnerID.String()).
		Str("merchant", merchant.Name).
		Uint64("amount", req.Amount).
		Uint64("amount_spent", newSpent).
		Msg("payment settled")
	return receipt, nil
}

func buildSettlementKey(ownerID uuid.UUID, referenceID string) string {
	return "settle:" + ownerID.String() + ":" + referenceID
}

func unmarshalReceipt(data []byte) (*ports.PaymentReceipt, error) {
	receipt := &ports.PaymentReceipt{}
	if err := json.Unmarshal(data, receipt); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached receipt: %w", err))
	}
	return receipt, nil
}
