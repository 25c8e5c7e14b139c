package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/siteops-admin/internal/config"
)

// Runs only against a live server: REDIS_ADDR=localhost:6379 go test ./internal/cache
func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	c := NewRedisCache(config.RedisConfig{Addr: addr})
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	_, ok, err := c.Get(ctx, "missing-key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "summary:test", "value", time.Minute))
	value, ok, err := c.Get(ctx, "summary:test")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)
}
