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

func TestRateLimitStore_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewRateLimitStore(client)
	ctx := context.Background()

	t.Run("allows requests within limit", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			allowed, err := store.Allow(ctx, "owner1:spend", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should be allowed", i)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		allowed, err := store.Allow(ctx, "owner1:spend", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("different keys are independent", func(t *testing.T) {
		allowed, err := store.Allow(ctx, "owner2:spend", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
