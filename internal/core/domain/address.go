package domain

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// Role labels used as the first component of record address derivation.
// They mirror the seed labels of the on-ledger layout this service fronts.
const (
	RoleVault    = "vault"
	RoleSpending = "spending"
	RoleYield    = "yield"
	RoleTreasury = "treasury"
	RoleMerchant = "merchant"
)

// DefaultBump is the disambiguation byte chosen at record creation. It is
// stored alongside each record so the address can be re-derived and checked
// by any external verifier.
const DefaultBump byte = 255

// DeriveAddress deterministically maps (role, owner, bump) to a record
// address. Lookups recompute the derivation instead of consulting an index,
// so two owners can never collide on the same record.
func DeriveAddress(role string, owner uuid.UUID, bump byte) string {
	h := sha256.New()
	h.Write([]byte(role))
	h.Write([]byte{':'})
	h.Write(owner[:])
	h.Write([]byte{bump})
	return hex.EncodeToString(h.Sum(nil))
}

// TreasuryAddress derives the singleton treasury address. The treasury has
// no owner component.
func TreasuryAddress(bump byte) string {
	return DeriveAddress(RoleTreasury, uuid.Nil, bump)
}
