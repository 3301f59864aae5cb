package cache

import "sync"

// Cache is a generic thread-safe LRU cache.
// When the cache holds more than its limit, the least recently used entries
// are evicted.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[K, V]
	order   lruList[K]
	limit   int

	hits   uint64
	misses uint64
}

// cacheEntry holds a cached value and its position in the LRU order.
type cacheEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a new cache holding at most limit entries.
// A limit of 0 means unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	c := &Cache[K, V]{
		entries: make(map[K]*cacheEntry[K, V]),
		limit:   limit,
	}
	c.order.init()
	return c
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(entry.node)
	return entry.value, true
}

// Set stores a value, evicting the least recently used entries when the
// cache grows past its limit.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(key, value)
}

// GetOrCreate returns the cached value for key or creates and stores it.
// create runs under the cache lock, so concurrent callers never build the
// same value twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(entry.node)
		return entry.value
	}
	c.misses++

	value := create()
	c.store(key, value)
	return value
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Clear removes all entries and resets the statistics.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[K, V])
	c.order.init()
	c.hits, c.misses = 0, 0
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:      len(c.entries),
		Capacity: c.limit,
		Hits:     c.hits,
		Misses:   c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// store inserts or replaces key. Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	if entry, ok := c.entries[key]; ok {
		entry.value = value
		c.order.moveToFront(entry.node)
		return
	}
	c.entries[key] = &cacheEntry[K, V]{value: value, node: c.order.pushFront(key)}

	for c.limit > 0 && len(c.entries) > c.limit {
		oldest, ok := c.order.removeOldest()
		if !ok {
			break
		}
		delete(c.entries, oldest)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the entry limit, 0 when unlimited.
	Capacity int
	// Hits is the number of lookups served from the cache.
	Hits uint64
	// Misses is the number of lookups that found nothing.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before the first lookup.
	HitRate float64
}
