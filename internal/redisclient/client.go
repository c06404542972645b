package redisclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"analytics-copilot/internal/models"

	"github.com/go-redis/redis/v8"
)

// Client caches serialized analytics results. The cache is an
// accelerator only: every result it holds can be recomputed from the
// snapshot, so losing it is harmless.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis-backed result cache
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// QueryKey derives the cache key for a free-text query. Queries that
// differ only in case or surrounding whitespace share a key, matching
// the interpreter's case-insensitive classification.
func QueryKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return "query:" + hex.EncodeToString(sum[:16])
}

// DashboardKey is the cache key for the canned dashboard payload
const DashboardKey = "dashboard"

// GetResult returns the cached result for a key, or nil on a miss
func (c *Client) GetResult(ctx context.Context, key string) (*models.AnalyticsResult, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var result models.AnalyticsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("cache entry corrupt: %w", err)
	}
	return &result, nil
}

// SetResult stores a result under the key with the configured TTL
func (c *Client) SetResult(ctx context.Context, key string, result *models.AnalyticsResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// SetJSON stores an arbitrary payload (dashboard panels) with TTL
func (c *Client) SetJSON(ctx context.Context, key string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// GetJSON loads a payload stored by SetJSON; returns false on a miss
func (c *Client) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get failed: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("cache entry corrupt: %w", err)
	}
	return true, nil
}
