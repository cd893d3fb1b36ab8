// Package cache keeps JSON snapshots of read views in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "tracker:"
	genPrefix = keyPrefix + "gen:"
)

// Cache is safe to use with a nil client; every lookup then misses and every
// store is a no-op.
type Cache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{redis: client, ttl: ttl, logger: logger}
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Load decodes the value stored under key into dst. Redis errors and corrupt
// payloads are treated as misses and the key is dropped.
func (c *Cache) Load(ctx context.Context, key string, dst any) bool {
	if c == nil || c.redis == nil {
		return false
	}
	data, err := c.redis.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
			_ = c.redis.Del(ctx, keyPrefix+key).Err()
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		_ = c.redis.Del(ctx, keyPrefix+key).Err()
		return false
	}
	return true
}

func (c *Cache) Store(ctx context.Context, key string, value any) {
	if c == nil || c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// EvictPrefix drops every key starting with prefix.
func (c *Cache) EvictPrefix(ctx context.Context, prefix string) {
	if c == nil || c.redis == nil {
		return
	}
	iter := c.redis.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache evict failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

// Generation returns the current generation counter of a key family. Readers
// fold it into their keys so that a value computed before Bump is stored
// under a key nobody reads anymore.
func (c *Cache) Generation(ctx context.Context, family string) int64 {
	if c == nil || c.redis == nil {
		return 0
	}
	gen, err := c.redis.Get(ctx, genPrefix+family).Int64()
	if err != nil && err != redis.Nil {
		c.logger.Warn("cache generation read failed", zap.String("family", family), zap.Error(err))
	}
	return gen
}

// Bump advances the generation counter of a key family.
func (c *Cache) Bump(ctx context.Context, family string) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Incr(ctx, genPrefix+family).Err(); err != nil {
		c.logger.Warn("cache generation bump failed", zap.String("family", family), zap.Error(err))
	}
}
