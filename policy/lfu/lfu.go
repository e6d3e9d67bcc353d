// Package lfu implements the frequency-bucket eviction engine: O(1)
// promotion between per-frequency buckets, tracking the minimum
// non-empty frequency for O(1) eviction, with periodic ageing to bound
// counter growth (spec.md §4.3).
package lfu

import (
	"sync"

	"github.com/arcmeld/adaptivecache/cache"
	"github.com/arcmeld/adaptivecache/internal/list"
	"github.com/arcmeld/adaptivecache/internal/util"
)

// DefaultMaxAverage is used when Options.MaxAverage is left at zero.
const DefaultMaxAverage = 10

// Options configures an LFU engine.
type Options struct {
	// Capacity is the maximum number of resident entries.
	Capacity int

	// MaxAverage triggers age-reduction once totalFreq/size exceeds it.
	// Zero selects DefaultMaxAverage.
	MaxAverage int64

	Metrics cache.Metrics
}

// Cache is a single-lock LFU engine.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	// nodes is the top-level ordered index: its keyset is exactly the
	// union of all buckets (invariant 2), and each node's Count field
	// is its current frequency.
	nodes map[K]*list.Node[K, V]
	// buckets maps frequency -> pure ordered list of entries at that
	// frequency (stale end ties break LRU, per spec.md §4.3).
	buckets map[int64]*list.List[K, V]

	minFreq    int64
	totalFreq  int64
	maxAverage int64
	capacity   int

	metrics cache.Metrics

	_       util.CacheLinePad
	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	evicted util.PaddedAtomicInt64
}

// Stats returns the engine's own hit/miss/eviction counters, tracked
// independently of whatever external Metrics implementation is plugged in.
func (c *Cache[K, V]) Stats() (hits, misses, evicted int64) {
	return c.hits.Load(), c.misses.Load(), c.evicted.Load()
}

// New constructs an LFU engine with the given options. It panics if
// Capacity is negative: 0 is the legal, permanently-empty configuration
// (spec.md §7), but a negative capacity is a programmer error.
func New[K comparable, V any](opt Options) *Cache[K, V] {
	if opt.Capacity < 0 {
		panic("lfu: Capacity must be >= 0")
	}
	m := opt.Metrics
	if m == nil {
		m = cache.NoopMetrics{}
	}
	maxAvg := opt.MaxAverage
	if maxAvg <= 0 {
		maxAvg = DefaultMaxAverage
	}
	return &Cache[K, V]{
		nodes:      make(map[K]*list.Node[K, V]),
		buckets:    make(map[int64]*list.List[K, V]),
		maxAverage: maxAvg,
		capacity:   opt.Capacity,
		metrics:    m,
	}
}

// Put stores v under k. An existing entry is updated in place and
// promoted exactly as a Get hit would be; a new entry is admitted at
// frequency 1, evicting from the minimum-frequency bucket first if full.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}
	if n, ok := c.nodes[k]; ok {
		n.Val = v
		c.promoteLocked(n)
		c.ageIfNeededLocked()
		return
	}
	if len(c.nodes) >= c.capacity {
		c.evictLocked()
	}
	n := &list.Node[K, V]{Key: k, Val: v, Count: 1}
	c.bucket(1).PushBack(n)
	c.nodes[k] = n
	c.minFreq = 1
	c.totalFreq++
	c.ageIfNeededLocked()
	c.metrics.Size(len(c.nodes))
}

// Get returns the value for k, promoting its frequency bucket on a hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.nodes[k]
	if !ok {
		c.misses.Add(1)
		c.metrics.Miss()
		var zero V
		return zero, false
	}
	c.promoteLocked(n)
	c.ageIfNeededLocked()
	c.hits.Add(1)
	c.metrics.Hit()
	return n.Val, true
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
	return len(c.nodes)
}

// Purge removes every resident entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = make(map[K]*list.Node[K, V])
	c.buckets = make(map[int64]*list.List[K, V])
	c.minFreq = 0
	c.totalFreq = 0
	c.metrics.Size(0)
}

// -------------------- internals (mu held) --------------------

// bucket returns the list for frequency f, creating it on first use.
func (c *Cache[K, V]) bucket(f int64) *list.List[K, V] {
	b, ok := c.buckets[f]
	if !ok {
		b = list.New[K, V]()
		c.buckets[f] = b
	}
	return b
}

// promoteLocked splices n out of its current bucket into bucket f+1,
// advancing minFreq when the vacated bucket was the minimum (spec.md §4.3
// "Hit promotion").
func (c *Cache[K, V]) promoteLocked(n *list.Node[K, V]) {
	f := n.Count
	old := c.buckets[f]
	old.Detach(n)
	emptied := old.Len() == 0
	if emptied {
		delete(c.buckets, f)
	}
	n.Count = f + 1
	c.bucket(n.Count).PushBack(n)
	c.totalFreq++
	if emptied && f == c.minFreq {
		c.minFreq = f + 1
	}
}

// evictLocked drops the stale end of the minimum-frequency bucket.
// It deliberately does not rescan for a new minFreq: the next insertion
// of a brand-new key always resets minFreq to 1 (spec.md §4.3).
func (c *Cache[K, V]) evictLocked() {
	b, ok := c.buckets[c.minFreq]
	if !ok || b.Len() == 0 {
		return
	}
	victim := b.Front()
	b.Detach(victim)
	if b.Len() == 0 {
		delete(c.buckets, c.minFreq)
	}
	delete(c.nodes, victim.Key)
	c.totalFreq -= victim.Count
	c.evicted.Add(1)
}

// ageIfNeededLocked subtracts maxAverage/2 (at least 1) from every entry's
// frequency (clamped at 1) once the running average crosses maxAverage,
// then rebuilds the buckets and
// recomputes minFreq from scratch (spec.md §4.3 "Ageing").
func (c *Cache[K, V]) ageIfNeededLocked() {
	size := int64(len(c.nodes))
	if size == 0 {
		return
	}
	if c.totalFreq/size <= c.maxAverage {
		return
	}
	decay := c.maxAverage / 2
	if decay < 1 {
		decay = 1
	}

	// Drain every bucket (Front/Detach repeatedly avoids needing direct
	// access to the list's internal links) before re-linking nodes into
	// their decayed buckets.
	all := make([]*list.Node[K, V], 0, len(c.nodes))
	for _, b := range c.buckets {
		for b.Len() > 0 {
			n := b.Front()
			b.Detach(n)
			all = append(all, n)
		}
	}
	c.buckets = make(map[int64]*list.List[K, V])

	var newTotal, newMin int64
	for _, n := range all {
		nf := n.Count - decay
		if nf < 1 {
			nf = 1
		}
		n.Count = nf
		newTotal += nf
		if newMin == 0 || nf < newMin {
			newMin = nf
		}
		c.bucket(nf).PushBack(n)
	}
	c.totalFreq = newTotal
	if newMin == 0 {
		newMin = 1
	}
	c.minFreq = newMin
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)
