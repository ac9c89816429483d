package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps Redis operations for the scoring response cache.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string
	Password string
	TTL      time.Duration
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Key helpers
func responseKey(digest string) string {
	return fmt.Sprintf("responses:%s", digest)
}

// GetResponse fetches a cached backend response by prompt digest.
// found is false on a miss; err is reserved for transport failures.
func (c *Client) GetResponse(ctx context.Context, digest string) (response string, found bool, err error) {
	val, err := c.rdb.Get(ctx, responseKey(digest)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get failed: %w", err)
	}
	return val, true, nil
}

// SetResponse stores a backend response under the prompt digest with
// the configured TTL.
func (c *Client) SetResponse(ctx context.Context, digest, response string) error {
	if err := c.rdb.Set(ctx, responseKey(digest), response, c.ttl).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}
