package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PriceCache is a short-TTL cache for the current effective ticket
// price. Injected so single-instance deployments can run in memory
// while multi-instance deployments share Redis.
type PriceCache interface {
	Get(ctx context.Context) (int64, bool, error)
	Set(ctx context.Context, price int64, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

const priceCacheKey = "pricing:current"

type RedisPriceCache struct {
	client *redis.Client
}

func NewRedisPriceCache(client *redis.Client) PriceCache {
	return &RedisPriceCache{client: client}
}

func (c *RedisPriceCache) Get(ctx context.Context) (int64, bool, error) {
	price, err := c.client.Get(ctx, priceCacheKey).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return price, true, nil
}

func (c *RedisPriceCache) Set(ctx context.Context, price int64, ttl time.Duration) error {
	return c.client.Set(ctx, priceCacheKey, price, ttl).Err()
}

func (c *RedisPriceCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, priceCacheKey).Err()
}

// MemoryPriceCache is the single-instance fallback.
type MemoryPriceCache struct {
	mu        sync.Mutex
	price     int64
	expiresAt time.Time
}

func NewMemoryPriceCache() PriceCache {
	return &MemoryPriceCache{}
}

func (c *MemoryPriceCache) Get(ctx context.Context) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiresAt.IsZero() || time.Now().After(c.expiresAt) {
		return 0, false, nil
	}
	return c.price, true, nil
}

func (c *MemoryPriceCache) Set(ctx context.Context, price int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.price = price
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

func (c *MemoryPriceCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.expiresAt = time.Time{}
	return nil
}
