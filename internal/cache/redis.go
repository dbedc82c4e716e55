// Package cache provides a tiny Redis client wrapper for caching decoded paths
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SyedDaiam9101/hmm-service/internal/inference"
)

// connectTimeout bounds the initial ping.
const connectTimeout = 5 * time.Second

// Cache wraps a Redis client for decoding results
type Cache struct {
	client *redis.Client
}

// New creates a new Cache instance connected to the specified Redis address
// If addr is empty, defaults to localhost:6379
func New(addr string) (*Cache, error) {
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Cache{client: client}, nil
}

// NewWithClient wraps an existing client without pinging it.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Key returns the Redis key for a decoded input of the named model.
func Key(model, input string) string {
	return fmt.Sprintf("hmm:%s:decode:%s", model, input)
}

// SetDecoding stores a decoding with the specified TTL
func (c *Cache) SetDecoding(ctx context.Context, model, input string, d inference.Decoding, ttl time.Duration) error {
	if c.client == nil {
		return fmt.Errorf("cache client is nil")
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode decoding for %q: %w", input, err)
	}

	if err := c.client.Set(ctx, Key(model, input), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set decoding for %q: %w", input, err)
	}

	return nil
}

// GetDecoding retrieves a decoding. found is false when the key does not exist.
func (c *Cache) GetDecoding(ctx context.Context, model, input string) (d inference.Decoding, found bool, err error) {
	if c.client == nil {
		return d, false, fmt.Errorf("cache client is nil")
	}

	data, err := c.client.Get(ctx, Key(model, input)).Bytes()
	if errors.Is(err, redis.Nil) {
		return d, false, nil
	}
	if err != nil {
		return d, false, fmt.Errorf("failed to get decoding for %q: %w", input, err)
	}

	if err := json.Unmarshal(data, &d); err != nil {
		return inference.Decoding{}, false, fmt.Errorf("failed to decode cached value for %q: %w", input, err)
	}

	return d, true, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
