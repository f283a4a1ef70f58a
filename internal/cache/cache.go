// Package cache provides a process-wide in-memory key/value store with
// per-entry expiration. A single instance is constructed at startup and
// shared by the table client and the statistics service; it is an
// optimization, never a source of truth.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded TTL store. Expiration is lazy: an expired entry
// is deleted when a Get or Has touches it, or eagerly via Prune.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

// Option configures the cache.
type Option func(*Cache)

// WithClock injects a clock, used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache whose SetDefault entries live for defaultTTL.
func New(defaultTTL time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored value if present and not expired. An expired entry
// found during the read is deleted before reporting a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value with expiresAt = now + ttl, overwriting any existing
// entry unconditionally. A ttl <= 0 produces an entry that is already
// expired; callers wanting to bypass caching should not call Set at all.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// SetDefault stores value under the cache-wide default TTL.
func (c *Cache) SetDefault(key string, value any) {
	c.Set(key, value, c.defaultTTL)
}

// Invalidate removes the entry if present and reports whether anything was removed.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	return ok
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Has reports whether a live entry exists for key, with the same lazy-expiry
// semantics as Get.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Prune eagerly removes all currently-expired entries and returns how many
// were removed. Housekeeping only; correctness never depends on it.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of stored entries, including expired ones that no
// read or prune has touched yet.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
