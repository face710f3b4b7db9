package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress_Deterministic(t *testing.T) {
	owner := uuid.New()

	a := DeriveAddress(RoleVault, owner, DefaultBump)
	b := DeriveAddress(RoleVault, owner, DefaultBump)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex sha256
}

func TestDeriveAddress_DistinctPerRoleOwnerBump(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	vault := DeriveAddress(RoleVault, owner, DefaultBump)

	assert.NotEqual(t, vault, DeriveAddress(RoleSpending, owner, DefaultBump))
	assert.NotEqual(t, vault, DeriveAddress(RoleYield, owner, DefaultBump))
	assert.NotEqual(t, vault, DeriveAddress(RoleVault, other, DefaultBump))
	assert.NotEqual(t, vault, DeriveAddress(RoleVault, owner, 254))
}

func TestVerifyAddress(t *testing.T) {
	owner := uuid.New()

	v := &Vault{OwnerID: owner, Bump: DefaultBump}
	v.Address = DeriveAddress(RoleVault, owner, DefaultBump)
	assert.True(t, v.VerifyAddress())

	// Tampered record fails re-derivation.
	v.OwnerID = uuid.New()
	assert.False(t, v.VerifyAddress())

	tr := &Treasury{Bump: DefaultBump, Address: TreasuryAddress(DefaultBump)}
	assert.True(t, tr.VerifyAddress())
	tr.Bump = 1
	assert.False(t, tr.VerifyAddress())
}

func TestSpendingAccount_Available(t *testing.T) {
	s := &SpendingAccount{SpendingLimit: 1000, AmountSpent: 400}
	avail, ok := s.Available()
	require.True(t, ok)
	assert.Equal(t, uint64(600), avail)

	s.AmountSpent = 1000
	avail, ok = s.Available()
	require.True(t, ok)
	assert.Zero(t, avail)

	// limit < spent is an invariant violation, not headroom zero
	s.AmountSpent = 1001
	_, ok = s.Available()
	assert.False(t, ok)
}

func TestPriceSnapshot_Validate(t *testing.T) {
	now := time.Now().UTC()
	feed := "ef0d8b614545449452e9f8d4623e34ade2ba2ac67362100e27457bf6fc8894c4"

	snap := &PriceSnapshot{
		FeedID:      feed,
		Price:       6_000_000_000_000,
		Conf:        5_129_162_301,
		Expo:        -8,
		PublishedAt: now.Add(-10 * time.Second),
	}
	assert.NoError(t, snap.Validate(feed, 60*time.Second, now))

	stale := *snap
	stale.PublishedAt = now.Add(-61 * time.Second)
	assert.Error(t, stale.Validate(feed, 60*time.Second, now))

	wrong := *snap
	wrong.FeedID = "deadbeef"
	assert.Error(t, wrong.Validate(feed, 60*time.Second, now))
}
