// Package cache provides the in-memory TTL caches that sit between the
// dashboard services and their remote data sources.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is a cached value with the time it was stored. Entries are replaced
// wholesale on refresh, never mutated in place.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// Valid reports whether the entry is still fresh at the given time. An entry
// aged exactly ttl is stale.
func (e Entry[V]) Valid(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt) < ttl
}

// Cache is a TTL cache keyed by string. Concurrent misses for the same key are
// collapsed into a single fetch. There is no eviction policy; the key space
// here is tens of contract addresses, and Clear handles manual refreshes.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key if it exists and is still fresh.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !e.Valid(c.now(), c.ttl) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Entry returns the raw entry for key, expired or not, with its timestamp.
func (c *Cache[V]) Entry(key string) (Entry[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e, ok
}

// Set stores a value for key, overwriting any existing entry and stamping the
// current time.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{Value: value, StoredAt: c.now()}
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry[V])
}

// Len returns the number of entries, including expired ones not yet
// overwritten.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Keys returns all cached keys.
func (c *Cache[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// TTL returns the configured entry lifetime.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// GetOrFetch returns the cached value for key, or runs fetch to populate it.
// Concurrent callers missing on the same key share a single fetch; the result
// is stored once and handed to every waiter. Fetch errors are returned to all
// waiters and are not cached.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A previous flight may have populated the entry between the miss
		// above and acquiring the flight.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}
