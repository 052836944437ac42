package auth

import (
	"time"

	"github.com/viant/mcp-protocol/syncmap"
)

// cacheEntry pairs a cached value with its absolute expiry.
type cacheEntry[V any] struct {
	expiresAt time.Time
	value     V
}

// ExpiryCache is a concurrent cache whose entries live until an absolute
// expiry. Expired entries are evicted lazily on the next lookup of their
// key; there is no background sweeper.
type ExpiryCache[K comparable, V any] struct {
	entries *syncmap.Map[K, *cacheEntry[V]]
	now     func() time.Time
}

// NewExpiryCache creates an empty cache.
func NewExpiryCache[K comparable, V any]() *ExpiryCache[K, V] {
	return &ExpiryCache[K, V]{
		entries: syncmap.NewMap[K, *cacheEntry[V]](),
		now:     time.Now,
	}
}

// Lookup returns the live value stored under key. An entry at or past
// its expiry is treated as absent and removed.
func (c *ExpiryCache[K, V]) Lookup(key K) (V, bool) {
	var zero V
	entry, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.entries.Delete(key)
		return zero, false
	}
	return entry.value, true
}

// Put stores value under key until expiresAt, replacing any prior entry.
func (c *ExpiryCache[K, V]) Put(key K, value V, expiresAt time.Time) {
	c.entries.Put(key, &cacheEntry[V]{expiresAt: expiresAt, value: value})
}

// Size returns the entry count, including expired entries not yet
// evicted by a lookup.
func (c *ExpiryCache[K, V]) Size() int {
	return c.entries.Size()
}
