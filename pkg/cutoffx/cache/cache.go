// Package cache holds parsed cutoff results keyed by (category, year, round).
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long a parsed result stays fresh.
const DefaultTTL = 5 * time.Minute

// Key identifies one parsed result.
type Key struct {
	Category string
	Year     int
	Round    int
}

// NewKey builds a Key with the category upper-cased.
func NewKey(category string, year, round int) Key {
	return Key{Category: strings.ToUpper(strings.TrimSpace(category)), Year: year, Round: round}
}

type entry[V any] struct {
	value    V
	storedAt time.Time
	seq      uint64
}

// Cache is a TTL map with an entry cap. Stale entries read as misses and are
// removed by Sweep or when Put needs room. It is safe for concurrent use.
type Cache[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[Key]entry[V]
	seq        uint64
	now        func() time.Time
}

// New creates a cache. ttl <= 0 uses DefaultTTL; maxEntries <= 0 means unbounded.
func New[V any](ttl time.Duration, maxEntries int) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[Key]entry[V]),
		now:        time.Now,
	}
}

// Get returns the value for k if present and fresh.
func (c *Cache[V]) Get(k Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok || c.expired(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores v under k. When the cache is full, expired entries are swept
// first and then the oldest entry is evicted.
func (c *Cache[V]) Put(k Key, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.sweepLocked()
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.seq++
	c.entries[k] = entry[V]{value: v, storedAt: c.now(), seq: c.seq}
}

// Delete removes k.
func (c *Cache[V]) Delete(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, k)
}

// Sweep removes expired entries and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked()
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) expired(e entry[V]) bool {
	return c.now().Sub(e.storedAt) > c.ttl
}

func (c *Cache[V]) sweepLocked() int {
	n := 0
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache[V]) evictOldestLocked() {
	var (
		oldest Key
		seq    uint64
		found  bool
	)
	for k, e := range c.entries {
		if !found || e.seq < seq {
			oldest, seq, found = k, e.seq, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}
