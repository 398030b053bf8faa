package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CountCache remembers the last known product total per filter combination.
// Entries never expire; a missing entry is a miss, not an error.
type CountCache interface {
	Get(ctx context.Context, key string) (int, bool)
	Set(ctx context.Context, key string, count int)
}

// ── In-process backend ───────────────────────────────────────────────────────

type MemoryCountCache struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewMemoryCountCache() *MemoryCountCache {
	return &MemoryCountCache{counts: make(map[string]int)}
}

func (c *MemoryCountCache) Get(_ context.Context, key string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.counts[key]
	return n, ok
}

func (c *MemoryCountCache) Set(_ context.Context, key string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key] = count
}

func (c *MemoryCountCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.counts)
}

// ── Redis backend ────────────────────────────────────────────────────────────

const countKeyPrefix = "count:"

// RedisCountCache shares counts between instances. Redis failures are logged
// and degrade to cache misses.
type RedisCountCache struct {
	client *redis.Client
}

func NewRedisCountCache(client *redis.Client) *RedisCountCache {
	return &RedisCountCache{client: client}
}

func (c *RedisCountCache) Get(ctx context.Context, key string) (int, bool) {
	n, err := c.client.Get(ctx, countKeyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		zap.L().Warn("count cache read failed", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return n, true
}

func (c *RedisCountCache) Set(ctx context.Context, key string, count int) {
	if err := c.client.Set(ctx, countKeyPrefix+key, count, 0).Err(); err != nil {
		zap.L().Warn("count cache write failed", zap.String("key", key), zap.Error(err))
	}
}
