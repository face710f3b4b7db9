package redis_test

import (
	"context"
	"testing"
	"time"

	"collateral-ledger/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_SetAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis.NewIdempotencyCache(client)
	ctx := context.Background()

	err := cache.Set(ctx, "settle:owner:ORDER-1", []byte(`{"amount":100}`), time.Hour)
	require.NoError(t, err)

	val, err := cache.Get(ctx, "settle:owner:ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"amount":100}`), val)
}

func TestIdempotencyCache_Miss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis.NewIdempotencyCache(client)

	val, err := cache.Get(context.Background(), "settle:owner:UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis.NewIdempotencyCache(client)
	ctx := context.Background()

	err := cache.Set(ctx, "settle:owner:ORDER-2", []byte("x"), time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	val, err := cache.Get(ctx, "settle:owner:ORDER-2")
	require.NoError(t, err)
	assert.Nil(t, val)
}
