// Package lru implements the strict recency eviction engine: O(1)
// move-to-fresh-end on access, evict the stalest entry on overflow
// (spec.md §4.2).
package lru

import (
	"sync"

	"github.com/arcmeld/adaptivecache/cache"
	"github.com/arcmeld/adaptivecache/internal/list"
	"github.com/arcmeld/adaptivecache/internal/util"
)

// Options configures an LRU engine.
type Options struct {
	// Capacity is the maximum number of resident entries. Capacity 0
	// makes the cache permanently empty: Put is a no-op, Get always misses.
	// A negative Capacity makes New panic.
	Capacity int

	// Metrics receives Hit/Miss/Size signals; nil defaults to NoopMetrics.
	Metrics cache.Metrics
}

// Cache is a single-lock LRU engine.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	idx      *list.Index[K, V]
	capacity int
	metrics  cache.Metrics

	// Hot counters kept on their own cache lines, mirroring the
	// teacher's shard hot-counter layout, independent of whatever
	// external Metrics implementation is plugged in.
	_       util.CacheLinePad
	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	evicted util.PaddedAtomicInt64
}

// New constructs an LRU engine with the given options. It panics if
// Capacity is negative: 0 is the legal, permanently-empty configuration
// (spec.md §7), but a negative capacity is a programmer error.
func New[K comparable, V any](opt Options) *Cache[K, V] {
	if opt.Capacity < 0 {
		panic("lru: Capacity must be >= 0")
	}
	m := opt.Metrics
	if m == nil {
		m = cache.NoopMetrics{}
	}
	return &Cache[K, V]{
		idx:      list.New[K, V](),
		capacity: opt.Capacity,
		metrics:  m,
	}
}

// Put stores v under k, promoting it to the fresh end. If k is new and
// the cache is at capacity, the stalest entry is evicted first.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}
	if n, ok := c.idx.Lookup(k); ok {
		n.Val = v
		c.idx.SpliceBack(n)
		return
	}
	if c.idx.Len() >= c.capacity {
		if victim := c.idx.Front(); victim != nil {
			c.idx.Remove(victim)
			c.evicted.Add(1)
		}
	}
	c.idx.InsertBack(k, v)
	c.metrics.Size(c.idx.Len())
}

// Get returns the value for k, promoting it to the fresh end on a hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx.Lookup(k)
	if !ok {
		c.misses.Add(1)
		c.metrics.Miss()
		var zero V
		return zero, false
	}
	n.Count++
	c.idx.SpliceBack(n)
	c.hits.Add(1)
	c.metrics.Hit()
	return n.Val, true
}

// Stats returns the engine's own hit/miss/eviction counters, tracked
// independently of whatever external Metrics implementation is plugged in.
func (c *Cache[K, V]) Stats() (hits, misses, evicted int64) {
	return c.hits.Load(), c.misses.Load(), c.evicted.Load()
}

// GetOrZero returns the value for k, or the zero value of V on a miss.
func (c *Cache[K, V]) GetOrZero(k K) V {
	v, _ := c.Get(k)
	return v
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.Len()
}

// Purge removes every resident entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx.Clear()
	c.metrics.Size(0)
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)
