// Package cache provides an optional Redis cache for summary responses.
// Summaries aggregate over many rows and are read far more often than the
// underlying data changes, everything else is served from the database
// directly.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const ttl = 5 * time.Minute

// Cache wraps a Redis client. The zero value and a Cache built from an empty
// URL are valid and do nothing, the backend works without Redis.
type Cache struct {
	client *redis.Client
}

// New connects to Redis. When url is empty or the connection fails, a no-op
// cache is returned and the backend continues without caching.
func New(url string) *Cache {
	if url == "" {
		return &Cache{}
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, continuing without cache")
		return &Cache{}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis is not reachable, continuing without cache")
		return &Cache{}
	}

	return &Cache{client: client}
}

// Get reads a cached value into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(data, dest) == nil
}

// Set stores a value under the key. Errors are logged and ignored, the cache
// is best effort.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	err = c.client.SetEx(ctx, key, data, ttl).Err()
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("could not cache value")
	}
}

// InvalidateSummaries drops all cached summary responses. Called whenever
// expenses, incomes or months change.
func (c *Cache) InvalidateSummaries(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "summary:*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
