package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptStore counts failed login attempts per key within a
// rolling window. Injected so the lockout counter survives across
// instances when backed by Redis instead of a per-process map.
type LoginAttemptStore interface {
	// Incr records one attempt and returns the count inside the window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

type RedisLoginAttemptStore struct {
	client *redis.Client
}

func NewRedisLoginAttemptStore(client *redis.Client) LoginAttemptStore {
	return &RedisLoginAttemptStore{client: client}
}

func (s *RedisLoginAttemptStore) attemptKey(key string) string {
	return fmt.Sprintf("login:attempts:%s", key)
}

func (s *RedisLoginAttemptStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := s.attemptKey(key)

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// first attempt starts the window
		s.client.Expire(ctx, k, window)
	}

	return count, nil
}

func (s *RedisLoginAttemptStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.attemptKey(key)).Err()
}

// MemoryLoginAttemptStore is the single-instance fallback.
type MemoryLoginAttemptStore struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry
}

type attemptEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryLoginAttemptStore() LoginAttemptStore {
	return &MemoryLoginAttemptStore{
		entries: make(map[string]*attemptEntry),
	}
}

func (s *MemoryLoginAttemptStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &attemptEntry{expiresAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++

	return entry.count, nil
}

func (s *MemoryLoginAttemptStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
