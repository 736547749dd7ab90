package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SummaryCache implements usecase.SummaryCache using Redis.
type SummaryCache struct {
	client *redis.Client
	prefix string
}

// NewSummaryCache creates a new SummaryCache.
func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{
		client: client,
		prefix: "opencap:summary:",
	}
}

// Get returns the cached narrative for key. A missing key is not an error.
func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a narrative with TTL.
func (c *SummaryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Ping reports whether Redis is reachable.
func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
