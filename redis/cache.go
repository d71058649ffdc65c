// Package redis provides a Redis-backed response cache for deployments
// where cached searches and scrapes must survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/redis/go-redis/v9"
)

// Ensure Cache implements dalil.Cache at compile time.
var _ dalil.Cache = (*Cache)(nil)

// Cache stores JSON-encoded values in Redis with a fixed TTL. Expiry is
// delegated to Redis itself.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache creates a Cache on an existing Redis client. Values expire
// after ttl; a non-positive ttl falls back to dalil.DefaultCacheTTL.
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = dalil.DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get loads the value stored under key into dest. Returns false on a miss
// or any Redis error; cache failures never fail the caller's request.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("cache get failed", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cache decode failed", "key", key, "err", err)
		return false
	}
	return true
}

// Set stores value under key with the configured TTL. Failures are logged
// and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "key", key, "err", err)
	}
}

// DeletePrefix removes every key starting with prefix and returns the
// number of keys removed. Uses SCAN so large keyspaces are not blocked.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) int {
	var removed int
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("cache delete failed", "key", iter.Val(), "err", err)
			continue
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", "prefix", prefix, "err", err)
	}
	return removed
}
