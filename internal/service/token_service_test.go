package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "collateral-ledger")
	ownerID := uuid.New()

	token, expiry, err := svc.Generate(ownerID, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-a", time.Hour, "collateral-ledger")
	other := NewJWTTokenService("secret-b", time.Hour, "collateral-ledger")

	token, _, err := svc.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	claims, err := other.Validate(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTTokenService_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", -time.Minute, "collateral-ledger")

	token, _, err := svc.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTTokenService_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "collateral-ledger")

	claims, err := svc.Validate("not.a.jwt")
	assert.Nil(t, claims)
	assert.Error(t, err)
}
