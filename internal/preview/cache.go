package preview

import (
	"wallpick/internal/protocol"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// DefaultCapacity is the number of decoded previews kept in memory.
const DefaultCapacity = 8

// Cache maps image paths to decoded previews and evicts the least recently
// used entry when full. It is not safe for concurrent use; the controller
// owns it.
type Cache struct {
	capacity  int
	lru       *simplelru.LRU[string, protocol.Protocol] // nil when capacity is 0
	evictions int
}

// NewCache creates a cache holding at most capacity entries. A capacity of
// 0 (or less) disables caching: every lookup misses and Put stores nothing.
func NewCache(capacity int) *Cache {
	c := &Cache{}
	if capacity <= 0 {
		return c
	}
	lru, err := simplelru.NewLRU[string, protocol.Protocol](capacity, nil)
	if err != nil {
		return c
	}
	c.capacity = capacity
	c.lru = lru
	return c
}

// Get returns the preview for path and marks it most recently used.
func (c *Cache) Get(path string) (protocol.Protocol, bool) {
	if c.lru == nil {
		return nil, false
	}
	return c.lru.Get(path)
}

// Put stores p under path and marks it most recently used. Adding a new
// path to a full cache evicts the least recently used entry first.
func (c *Cache) Put(path string, p protocol.Protocol) {
	if c.lru == nil {
		return
	}
	if c.lru.Add(path, p) {
		c.evictions++
	}
}

// Contains reports whether path is cached without touching its recency.
func (c *Cache) Contains(path string) bool {
	if c.lru == nil {
		return false
	}
	return c.lru.Contains(path)
}

// Remove drops path and reports whether it was present.
func (c *Cache) Remove(path string) bool {
	if c.lru == nil {
		return false
	}
	return c.lru.Remove(path)
}

// Keys returns the cached paths, most recently used first.
func (c *Cache) Keys() []string {
	if c.lru == nil {
		return nil
	}
	keys := c.lru.Keys()
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Cap returns the capacity the cache was created with.
func (c *Cache) Cap() int { return c.capacity }

// Evictions returns how many entries have been pushed out by Put.
func (c *Cache) Evictions() int { return c.evictions }

// Purge empties the cache.
func (c *Cache) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}
