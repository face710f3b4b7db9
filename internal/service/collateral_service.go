package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/apperror"
	"collateral-ledger/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CollateralServiceImpl implements ports.CollateralService.
//
// Lock order inside a transaction is spending -> yield -> vault -> treasury;
// every flow touching more than one of these acquires them in that order.
type CollateralServiceImpl struct {
	spendingRepo ports.SpendingAccountRepository
	yieldRepo    ports.YieldAccountRepository
	vaultRepo    ports.VaultRepository
	treasuryRepo ports.TreasuryRepository
	transactor   ports.DBTransactor
	oracle       ports.PriceOracle
	feedID       string
	maxPriceAge  time.Duration
	ledgerMx     *metrics.Ledger
	log          zerolog.Logger
}

// NewCollateralService creates a new CollateralServiceImpl.
func NewCollateralService(
	spendingRepo ports.SpendingAccountRepository,
	yieldRepo ports.YieldAccountRepository,
	vaultRepo ports.VaultRepository,
	treasuryRepo ports.TreasuryRepository,
	transactor ports.DBTransactor,
	oracle ports.PriceOracle,
	feedID string,
	maxPriceAge time.Duration,
	ledgerMx *metrics.Ledger,
	log zerolog.Logger,
) *CollateralServiceImpl {
	return &CollateralServiceImpl{
		spendingRepo: spendingRepo,
		yieldRepo:    yieldRepo,
		vaultRepo:    vaultRepo,
		treasuryRepo: treasuryRepo,
		transactor:   transactor,
		oracle:       oracle,
		feedID:       feedID,
		maxPriceAge:  maxPriceAge,
		ledgerMx:     ledgerMx,
		log:          log,
	}
}

// Position evaluates the owner's collateral ratio without mutating state.
func (s *CollateralServiceImpl) Position(ctx context.Context, ownerID uuid.UUID) (*ports.PositionReport, error) {
	spending, err := s.spendingRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get spending account: %w", err))
	}
	if spending == nil {
		return nil, apperror.ErrNotFound("spending account")
	}
	yield, err := s.yieldRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get yield account: %w", err))
	}
	if yield == nil {
		return nil, apperror.ErrNotFound("yield account")
	}
	if !spending.VerifyAddress() || !yield.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	price, err := s.oracle.GetPrice(ctx, s.feedID, s.maxPriceAge)
	if err != nil {
		return nil, err
	}

	value, err := StakedValueCents(yield.StakedAmount, price.Price, price.Expo)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}
	spentCents := spending.AmountSpent
	ratio, err := CollateralRatio(value, spentCents)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}

	healthy := spentCents == 0 || ratio >= LiquidationThreshold
	s.ledgerMx.CollateralRatio.WithLabelValues(ownerID.String()).Set(float64(ratio))

	return &ports.PositionReport{
		OwnerID:          ownerID,
		StakedAmount:     yield.StakedAmount,
		StakedValueCents: value,
		AmountSpentCents: spentCents,
		CollateralRatio:  ratio,
		Healthy:          healthy,
		StakedValueUSD:   centsToUSD(value),
		DebtUSD:          centsToUSD(spentCents),
		Price:            price,
	}, nil
}

// Liquidate evaluates the owner's position against a fresh price and, when
// the collateral ratio is below the threshold, atomically resizes debt and
// collateral across treasury, vault, yield and spending records. All four
// effects commit together or not at all.
func (s *CollateralServiceImpl) Liquidate(ctx context.Context, ownerID uuid.UUID) (*ports.LiquidationReport, error) {
	price, err := s.oracle.GetPrice(ctx, s.feedID, s.maxPriceAge)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	spending, err := s.spendingRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock spending account: %w", err))
	}
	if spending == nil {
		return nil, apperror.ErrNotFound("spending account")
	}
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

	if !spending.VerifyAddress() || !yield.VerifyAddress() || !vault.VerifyAddress() || !treasury.VerifyAddress() {
		return nil, apperror.ErrAuthorizationFault()
	}

	value, err := StakedValueCents(yield.StakedAmount, price.Price, price.Expo)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}
	spentCents := spending.AmountSpent
	ratio, err := CollateralRatio(value, spentCents)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}

	// Zero-debt positions report ratio 0 and are always healthy.
	if spentCents == 0 || ratio >= LiquidationThreshold {
		s.ledgerMx.HealthyChecks.Inc()
		s.ledgerMx.CollateralRatio.WithLabelValues(ownerID.String()).Set(float64(ratio))
		s.log.Info().
			Str("owner_id", ownerID.String()).
			Uint64("ratio", ratio).
			Msg("position healthy, no liquidation needed")
		return &ports.LiquidationReport{
			OwnerID:     ownerID,
			Liquidated:  false,
			RatioBefore: ratio,
			RatioAfter:  ratio,
		}, nil
	}

	units, repayCents, err := LiquidationSize(value, spentCents, price.Price, price.Expo)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}

	// Treasury pays out the liquidated units; a shortfall aborts the whole
	// transaction with nothing committed.
	if treasury.Balance < units {
		return nil, apperror.ErrInsufficientFunds()
	}
	newTreasury := treasury.Balance - units
	newVault := vault.Balance + units
	if newVault < vault.Balance {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("vault credit overflow"))
	}
	if yield.StakedAmount < units {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("liquidating %d units exceeds staked %d", units, yield.StakedAmount))
	}
	newStaked := yield.StakedAmount - units
	if spentCents < repayCents {
		return nil, apperror.ErrArithmeticFault(fmt.Errorf("repaying %d cents exceeds debt %d", repayCents, spentCents))
	}
	newSpent := spentCents - repayCents

	if err := s.treasuryRepo.UpdateBalance(ctx, dbTx, treasury.Address, newTreasury); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit treasury: %w", err))
	}
	if err := s.vaultRepo.UpdateBalance(ctx, dbTx, vault.Address, newVault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit vault: %w", err))
	}
	if err := s.yieldRepo.UpdateStakedAmount(ctx, dbTx, yield.Address, newStaked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reduce staked amount: %w", err))
	}
	if err := s.spendingRepo.UpdateAmountSpent(ctx, dbTx, spending.Address, newSpent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reduce amount spent: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	newValue, err := StakedValueCents(newStaked, price.Price, price.Expo)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}
	ratioAfter, err := CollateralRatio(newValue, newSpent)
	if err != nil {
		return nil, apperror.ErrArithmeticFault(err)
	}

	s.ledgerMx.Liquidations.Inc()
	s.ledgerMx.LiquidatedUnits.Add(float64(units))
	s.ledgerMx.RepaidDebtCents.Add(float64(repayCents))
	s.ledgerMx.CollateralRatio.WithLabelValues(ownerID.String()).Set(float64(ratioAfter))

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Uint64("ratio_before", ratio).
		Uint64("ratio_after", ratioAfter).
		Uint64("units_liquidated", units).
		Uint64("debt_repaid_cents", repayCents).
		Str("debt_repaid_usd", centsToUSD(repayCents)).
		Msg("position liquidated")

	return &ports.LiquidationReport{
		OwnerID:         ownerID,
		Liquidated:      true,
		RatioBefore:     ratio,
		RatioAfter:      ratioAfter,
		UnitsLiquidated: units,
		DebtRepaidCents: repayCents,
	}, nil
}

// centsToUSD renders a cents amount as a fixed two-decimal USD string.
func centsToUSD(cents uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(cents), -2).StringFixed(2)
}
