package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreIncrement(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	count, resetAt, err := store.Increment(ctx, "auth:10.0.0.1", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), resetAt, 2*time.Second)

	count, resetAt2, err := store.Increment(ctx, "auth:10.0.0.1", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	// The second increment keeps the original window expiry
	assert.WithinDuration(t, resetAt, resetAt2, 2*time.Second)
}

func TestRedisStoreWindowReset(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := store.Increment(ctx, "general:10.0.0.1", time.Minute)
		require.NoError(t, err)
	}

	mr.FastForward(time.Minute + time.Second)

	count, _, err := store.Increment(ctx, "general:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreDecrement(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "auth:10.0.0.1", time.Minute)
	require.NoError(t, err)
	_, _, err = store.Increment(ctx, "auth:10.0.0.1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Decrement(ctx, "auth:10.0.0.1"))

	count, _, err := store.Increment(ctx, "auth:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRedisStoreDecrementMissingKey(t *testing.T) {
	store, _ := newTestRedisStore(t)

	assert.NoError(t, store.Decrement(context.Background(), "auth:203.0.113.9"))
}

func TestRedisStoreDecrementFloor(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "mint:10.0.0.1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Decrement(ctx, "mint:10.0.0.1"))
	require.NoError(t, store.Decrement(ctx, "mint:10.0.0.1"))

	count, _, err := store.Increment(ctx, "mint:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreKeyIsolation(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "auth:10.0.0.1", time.Minute)
	require.NoError(t, err)

	assert.True(t, mr.Exists("ratelimit:auth:10.0.0.1"))

	count, _, err := store.Increment(ctx, "admin:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
