package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// DefaultPatternTTL bounds how stale cached pattern statistics may get.
const DefaultPatternTTL = 15 * time.Minute

// RedisPatternCache stores pattern statistics in Redis, namespaced per
// tenant so deployments can share one instance.
type RedisPatternCache struct {
	client *redis.Client
	tenant string
	ttl    time.Duration
}

// NewRedisPatternCache creates a cache for the given tenant. A zero ttl
// means DefaultPatternTTL.
func NewRedisPatternCache(client *redis.Client, tenant string, ttl time.Duration) *RedisPatternCache {
	if ttl <= 0 {
		ttl = DefaultPatternTTL
	}
	return &RedisPatternCache{client: client, tenant: tenant, ttl: ttl}
}

func (c *RedisPatternCache) key() string {
	return fmt.Sprintf("slotwise:tenant:%s:patterns", c.tenant)
}

// Get returns the cached statistics; ok is false on a miss.
func (c *RedisPatternCache) Get(ctx context.Context) (domain.PatternStats, bool, error) {
	raw, err := c.client.Get(ctx, c.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PatternStats{}, false, nil
	}
	if err != nil {
		return domain.PatternStats{}, false, fmt.Errorf("failed to read pattern cache: %w", err)
	}

	var stats domain.PatternStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return domain.PatternStats{}, false, fmt.Errorf("failed to decode pattern cache: %w", err)
	}
	return stats, true, nil
}

// Put stores the statistics under the tenant key with the configured TTL.
func (c *RedisPatternCache) Put(ctx context.Context, stats domain.PatternStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode pattern stats: %w", err)
	}
	if err := c.client.Set(ctx, c.key(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write pattern cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached statistics, e.g. after new commitments land.
func (c *RedisPatternCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pattern cache: %w", err)
	}
	return nil
}
