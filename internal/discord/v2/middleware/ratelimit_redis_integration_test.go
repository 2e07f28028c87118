//go:build integration

package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/guild-verification-bot/internal/testutils"
)

func TestRedisRateLimitStore_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	store := middleware.NewRedisRateLimitStore(client)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, err := store.Increment(ctx, "user-1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	ttl, err := client.TTL(ctx, "ratelimit:user-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second, "later hits must not extend the window")

	require.NoError(t, store.Reset(ctx, "user-1"))
	count, err := store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRedisRateLimitStore_WindowExpires(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	store := middleware.NewRedisRateLimitStore(client)
	ctx := context.Background()

	_, err := store.Increment(ctx, "user-2", time.Second)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		n, err := client.Exists(ctx, "ratelimit:user-2").Result()
		return err == nil && n == 0
	}, 3*time.Second, 100*time.Millisecond)
}
