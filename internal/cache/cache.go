// Package cache provides an optional Redis read-through cache for commit
// payloads. Payloads are content-addressed and immutable, so cached entries
// can never go stale; the TTL only bounds Redis memory.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "promptshelf:content:"

// ContentCache caches payloads by content reference. Implements
// ops.ContentCache.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a cache. The connection is verified
// eagerly so a bad address fails at startup, not on first read.
func New(ctx context.Context, addr, password string, ttl time.Duration) (*ContentCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &ContentCache{client: client, ttl: ttl}, nil
}

// GetContent returns the cached payload for ref, if present. Errors count
// as misses; the database remains the source of truth.
func (c *ContentCache) GetContent(ctx context.Context, ref string) (string, bool) {
	body, err := c.client.Get(ctx, keyPrefix+ref).Result()
	if err != nil {
		return "", false
	}
	return body, true
}

// SetContent stores a payload best-effort; a failed write only costs the
// next read a database round trip.
func (c *ContentCache) SetContent(ctx context.Context, ref, body string) {
	if err := c.client.Set(ctx, keyPrefix+ref, body, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s failed: %v", ref, err)
	}
}

// Close releases the Redis connection.
func (c *ContentCache) Close() error {
	return c.client.Close()
}
