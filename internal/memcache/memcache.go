// Package memcache is the in-process contracts.Cache used when Redis is disabled.
package memcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// Cache stores JSON-encoded values so hits behave exactly like the Redis cache
// (callers never share memory with the cached copy).
type Cache struct {
	store *cache.Cache
}

// New creates a cache; entries without an explicit TTL expire after defaultTTL
func New(defaultTTL time.Duration) *Cache {
	return &Cache{store: cache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a cached value into dest
func (c *Cache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, found := c.store.Get(key)
	if !found {
		return false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("cache entry %s has type %T", key, v)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return true, nil
}

// Set stores value with ttl (0 = default TTL)
func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.store.Set(key, data, ttl)
	return nil
}

// Delete removes a cached value
func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Flush drops every entry
func (c *Cache) Flush() {
	c.store.Flush()
}

// Len returns the number of live entries
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
