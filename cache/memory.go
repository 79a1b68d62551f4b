package cache

import (
	"sync"
	"time"
)

// entry holds a cached value with its insertion timestamp.
type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Memory is a thread-safe in-memory cache bounded by entry count and TTL.
// On overflow the oldest-inserted entry is evicted first; overwriting an
// existing key refreshes its timestamp but keeps its insertion position.
// Expired entries are evicted on read.
type Memory[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	order      []string // keys in insertion order; may hold stale refs
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewMemory creates a memory cache holding at most maxEntries entries,
// each valid for ttl. Non-positive maxEntries or ttl select the defaults;
// use NewMemoryUnbounded for no TTL.
func NewMemory[V any](maxEntries int, ttl time.Duration) *Memory[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory[V]{
		entries:    make(map[string]entry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get retrieves a value. An entry older than the TTL is treated as absent
// and removed.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		c.dropOrderRef(key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value, evicting the oldest-inserted entry when the cache
// is at capacity.
func (c *Memory[V]) Set(key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
	return nil
}

// evictOldest removes the oldest-inserted entry. Caller holds c.mu.
func (c *Memory[V]) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	key := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, key)
}

// dropOrderRef removes the insertion-order reference for key so a later
// re-insert gets a fresh position. Caller holds c.mu.
func (c *Memory[V]) dropOrderRef(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Len returns the number of entries, including not-yet-collected expired ones.
func (c *Memory[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries and timestamps.
func (c *Memory[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.order = nil
}

// Entries returns all non-expired entries, keyed as stored. Used by the
// exporter.
func (c *Memory[V]) Entries() map[string]V {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make(map[string]V, len(c.entries))
	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.insertedAt) > c.ttl {
			continue
		}
		result[key] = e.value
	}
	return result
}
