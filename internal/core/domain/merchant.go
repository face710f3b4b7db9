package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxMerchantNameLen bounds the merchant display name.
const MaxMerchantNameLen = 200

// MerchantAccount is a registered payment destination. The authority is
// immutable after creation; settlement verifies the payout destination by
// address equality against this record.
type MerchantAccount struct {
	Address   string    `json:"address"`
	OwnerID   uuid.UUID `json:"owner_id"` // merchant authority
	Name      string    `json:"name"`
	Bump      byte      `json:"bump"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyAddress re-derives the merchant address from its stored bump.
func (m *MerchantAccount) VerifyAddress() bool {
	return m.Address == DeriveAddress(RoleMerchant, m.OwnerID, m.Bump)
}
