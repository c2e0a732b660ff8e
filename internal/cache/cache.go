// Package cache provides a small TTL cache over redis for the read-heavy
// aggregation endpoints. A nil *Cache is valid and disables caching.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/config"
)

// Cache wraps a redis client with JSON encoding and a fixed TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// New connects to redis. Returns nil (caching disabled) when no address
// is configured or the server is unreachable at startup.
func New(cfg *config.RedisConfig, log zerolog.Logger) *Cache {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, caching disabled")
		client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("Redis cache connected")
	return &Cache{
		client: client,
		ttl:    cfg.TTL,
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Get unmarshals the cached value for key into dest. Returns false on
// miss or any redis/decode failure; callers fall through to the store.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache decode failed")
		return false
	}
	return true
}

// Set stores a value under key with the configured TTL. Failures are
// logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
