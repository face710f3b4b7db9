package service

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Engine constants. Ratios are percentages; native units carry 9 fractional
// decimal digits, quote-currency cents carry 2.
const (
	// LiquidationThreshold is the collateral ratio below which a position
	// is rebalanced.
	LiquidationThreshold uint64 = 120
	// TargetCollateralRatio is the ratio a rebalance restores.
	TargetCollateralRatio uint64 = 150

	nativeUnitDecimals = 9
	centsDecimals      = 2

	// maxExpo bounds the accepted price-feed exponent magnitude. Anything
	// wider cannot produce a meaningful cents conversion.
	maxExpo = 18
)

// AmountSpent already carries the same cents scale the converted collateral
// value uses; the sizing formulas below treat it as such. Authorize/settle
// flows treat spend amounts as raw transfer amounts, which is the unit
// convention of the source system this ledger mirrors.

func pow10(n uint32) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(n)))
}

func absExpo(expo int32) (uint32, error) {
	e := expo
	if e < 0 {
		e = -e
	}
	if e > maxExpo {
		return 0, fmt.Errorf("price exponent %d out of range", expo)
	}
	return uint32(e), nil
}

// StakedValueCents converts a staked native amount to quote-currency cents:
// stakedAmount * price / 10^(unitDecimals + |expo| - centsDecimals).
// Every step is overflow-checked and fails closed.
func StakedValueCents(stakedAmount uint64, price int64, expo int32) (uint64, error) {
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price %d", price)
	}
	e, err := absExpo(expo)
	if err != nil {
		return 0, err
	}

	product, overflow := new(uint256.Int).MulOverflow(
		uint256.NewInt(stakedAmount),
		uint256.NewInt(uint64(price)),
	)
	if overflow {
		return 0, fmt.Errorf("staked value multiplication overflow")
	}

	divisor := pow10(nativeUnitDecimals + e - centsDecimals)
	if divisor.IsZero() {
		return 0, fmt.Errorf("zero value divisor")
	}

	cents := new(uint256.Int).Div(product, divisor)
	if !cents.IsUint64() {
		return 0, fmt.Errorf("staked value %s cents exceeds 64 bits", cents)
	}
	return cents.Uint64(), nil
}

// CollateralRatio computes stakedValueCents*100/amountSpentCents as an
// integer percentage. A zero-debt position reports 0 and is always healthy.
func CollateralRatio(stakedValueCents, amountSpentCents uint64) (uint64, error) {
	if amountSpentCents == 0 {
		return 0, nil
	}

	numerator, overflow := new(uint256.Int).MulOverflow(
		uint256.NewInt(stakedValueCents),
		uint256.NewInt(100),
	)
	if overflow {
		return 0, fmt.Errorf("ratio multiplication overflow")
	}

	ratio := new(uint256.Int).Div(numerator, uint256.NewInt(amountSpentCents))
	if !ratio.IsUint64() {
		return 0, fmt.Errorf("collateral ratio %s exceeds 64 bits", ratio)
	}
	return ratio.Uint64(), nil
}

// LiquidationSize computes how much debt to repay and how many native units
// to move so the post-rebalance ratio lands on TargetCollateralRatio.
//
//	targetDebtCents = stakedValueCents * 100 / 150
//	debtToRepayCents = amountSpentCents - targetDebtCents
//	unitsToLiquidate = debtToRepayCents * 10^(9+|expo|) / price / 100
//
// Integer division truncates toward zero, so rounding always favors the
// pool: never more units liquidated than the repaid debt justifies.
func LiquidationSize(stakedValueCents, amountSpentCents uint64, price int64, expo int32) (units uint64, repayCents uint64, err error) {
	if price <= 0 {
		return 0, 0, fmt.Errorf("non-positive price %d", price)
	}
	e, err := absExpo(expo)
	if err != nil {
		return 0, 0, err
	}

	numerator, overflow := new(uint256.Int).MulOverflow(
		uint256.NewInt(stakedValueCents),
		uint256.NewInt(100),
	)
	if overflow {
		return 0, 0, fmt.Errorf("target debt multiplication overflow")
	}
	targetDebt := new(uint256.Int).Div(numerator, uint256.NewInt(TargetCollateralRatio))

	spent := uint256.NewInt(amountSpentCents)
	if spent.Lt(targetDebt) {
		// Debt below the rebalance target means the position was never
		// below threshold; reaching here is an invariant violation.
		return 0, 0, fmt.Errorf("debt %d cents below rebalance target %s", amountSpentCents, targetDebt)
	}
	repay := new(uint256.Int).Sub(spent, targetDebt)

	scaled, overflow := new(uint256.Int).MulOverflow(repay, pow10(nativeUnitDecimals+e))
	if overflow {
		return 0, 0, fmt.Errorf("unit conversion overflow")
	}
	unitsWide := new(uint256.Int).Div(scaled, uint256.NewInt(uint64(price)))
	unitsWide.Div(unitsWide, uint256.NewInt(100))

	if !unitsWide.IsUint64() || !repay.IsUint64() {
		return 0, 0, fmt.Errorf("liquidation size exceeds 64 bits")
	}
	return unitsWide.Uint64(), repay.Uint64(), nil
}
