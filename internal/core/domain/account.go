package domain

import (
	"time"

	"github.com/google/uuid"
)

// All monetary fields are unsigned fixed-point integers in the base value
// unit (9 fractional decimal digits for native units, 2 for cents). No
// floating point ever touches persisted state.

// Vault is a per-owner collateral balance record.
type Vault struct {
	Address   string    `json:"address"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Balance   uint64    `json:"balance"`
	Bump      byte      `json:"bump"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerifyAddress re-derives the vault address from its stored bump.
func (v *Vault) VerifyAddress() bool {
	return v.Address == DeriveAddress(RoleVault, v.OwnerID, v.Bump)
}

// Treasury is the shared pool holding value staked out of vaults. It is a
// singleton; the balance is debited by liquidation payouts.
type Treasury struct {
	Address   string    `json:"address"`
	Balance   uint64    `json:"balance"`
	Bump      byte      `json:"bump"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerifyAddress re-derives the treasury address from its stored bump.
func (t *Treasury) VerifyAddress() bool {
	return t.Address == TreasuryAddress(t.Bump)
}

// YieldAccount tracks a single owner's currently staked amount.
type YieldAccount struct {
	Address      string    `json:"address"`
	OwnerID      uuid.UUID `json:"owner_id"`
	StakedAmount uint64    `json:"staked_amount"`
	Bump         byte      `json:"bump"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VerifyAddress re-derives the yield account address from its stored bump.
func (y *YieldAccount) VerifyAddress() bool {
	return y.Address == DeriveAddress(RoleYield, y.OwnerID, y.Bump)
}

// SpendingAccount tracks a single owner's spending limit and outstanding
// debt. AmountSpent <= SpendingLimit under normal operation; liquidation may
// reduce both together but never drives AmountSpent negative.
type SpendingAccount struct {
	Address       string    `json:"address"`
	OwnerID       uuid.UUID `json:"owner_id"`
	SpendingLimit uint64    `json:"spending_limit"`
	AmountSpent   uint64    `json:"amount_spent"`
	Bump          byte      `json:"bump"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VerifyAddress re-derives the spending account address from its stored bump.
func (s *SpendingAccount) VerifyAddress() bool {
	return s.Address == DeriveAddress(RoleSpending, s.OwnerID, s.Bump)
}

// Available returns the remaining spend headroom. ok is false when the
// stored limit is below the amount already spent, which violates the
// account invariant and must surface as an arithmetic fault.
func (s *SpendingAccount) Available() (uint64, bool) {
	if s.SpendingLimit < s.AmountSpent {
		return 0, false
	}
	return s.SpendingLimit - s.AmountSpent, true
}
