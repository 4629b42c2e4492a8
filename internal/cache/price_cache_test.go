package cache_test

import (
	"context"
	"testing"
	"time"

	"summit-registration/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPriceCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss before any set", func(t *testing.T) {
		c := cache.NewMemoryPriceCache()

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hit within ttl", func(t *testing.T) {
		c := cache.NewMemoryPriceCache()
		require.NoError(t, c.Set(ctx, 500_000, time.Minute))

		price, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(500_000), price)
	})

	t.Run("miss after ttl", func(t *testing.T) {
		c := cache.NewMemoryPriceCache()
		require.NoError(t, c.Set(ctx, 500_000, 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate clears the entry", func(t *testing.T) {
		c := cache.NewMemoryPriceCache()
		require.NoError(t, c.Set(ctx, 500_000, time.Minute))
		require.NoError(t, c.Invalidate(ctx))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
