// Package cache wraps the optional Redis client used for rate limiting.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides Redis access methods.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and verifies the connection.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// The limiter issues one short script call per request
	opt.PoolSize = 10
	opt.MinIdleConns = 1
	opt.PoolTimeout = 2 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
