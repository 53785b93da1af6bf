// Package cache keeps serialized list pages in redis. Each namespace carries a
// version counter; invalidating bumps the counter so stale pages are never read
// again and simply expire.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached namespaces
const (
	NamespaceDonors   = "donors"
	NamespaceProducts = "products"
)

// DefaultTTL is applied when the configured TTL is not positive
const DefaultTTL = 5 * time.Minute

// PageCache stores JSON values under versioned keys. A nil *PageCache always misses.
type PageCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New creates a page cache over client
func New(client redis.UniversalClient, prefix string, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "donation"
	}
	return &PageCache{client: client, prefix: prefix, ttl: ttl}
}

// NewClient connects to redis at addr and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (c *PageCache) versionKey(namespace string) string {
	return fmt.Sprintf("%s:%s:version", c.prefix, namespace)
}

// Key builds the storage key of an entry under a namespace version
func (c *PageCache) Key(namespace string, version int64, key string) string {
	return fmt.Sprintf("%s:%s:v%d:%s", c.prefix, namespace, version, key)
}

func (c *PageCache) version(ctx context.Context, namespace string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get decodes the cached value into dest and reports whether it was found
func (c *PageCache) Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	version, err := c.version(ctx, namespace)
	if err != nil {
		return false, fmt.Errorf("failed to read cache version: %w", err)
	}
	raw, err := c.client.Get(ctx, c.Key(namespace, version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores value under the current namespace version
func (c *PageCache) Set(ctx context.Context, namespace, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	version, err := c.version(ctx, namespace)
	if err != nil {
		return fmt.Errorf("failed to read cache version: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(namespace, version, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate makes every entry of namespace unreachable
func (c *PageCache) Invalidate(ctx context.Context, namespace string) error {
	if c == nil {
		return nil
	}
	if err := c.client.Incr(ctx, c.versionKey(namespace)).Err(); err != nil {
		return fmt.Errorf("failed to bump cache version: %w", err)
	}
	return nil
}
