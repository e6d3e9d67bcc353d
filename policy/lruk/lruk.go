// Package lruk implements the LRU-K admission filter: a key must be
// accessed K times before it is admitted into the backing main cache,
// so one-shot scans don't pollute the hot set (spec.md §4.4).
package lruk

import (
	"sync"

	"github.com/arcmeld/adaptivecache/cache"
	"github.com/arcmeld/adaptivecache/internal/list"
	"github.com/arcmeld/adaptivecache/internal/util"
)

// Options configures an LRU-K engine.
type Options struct {
	// MainCapacity bounds the admitted (hot) set.
	MainCapacity int
	// HistoryCapacity bounds the tracked-but-not-yet-admitted set; it is
	// itself evicted in plain LRU order when full. Zero leaves the history
	// unbounded.
	HistoryCapacity int
	// K is the access count required before a key is admitted to main.
	// Must be >= 1; New panics otherwise. K == 1 behaves like plain LRU
	// (admit on first touch).
	K int

	Metrics cache.Metrics
}

// Cache is a single-lock LRU-K engine: a main LRU cache fronted by a
// history of per-key access counts and a staging map of pending values.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	main    *list.Index[K, V]
	history *list.Index[K, int64] // key -> access count, LRU-evicted
	staging map[K]V

	mainCapacity int
	historyCap   int
	k            int64

	metrics cache.Metrics

	_        util.CacheLinePad
	hits     util.PaddedAtomicInt64
	misses   util.PaddedAtomicInt64
	promoted util.PaddedAtomicInt64
}

// Stats returns the engine's own hit/miss/promotion counters, tracked
// independently of whatever external Metrics implementation is plugged in.
func (c *Cache[K, V]) Stats() (hits, misses, promoted int64) {
	return c.hits.Load(), c.misses.Load(), c.promoted.Load()
}

// New constructs an LRU-K engine with the given options. It panics if
// MainCapacity or HistoryCapacity is negative (MainCapacity 0 is the legal,
// permanently-empty configuration, spec.md §7) or if K < 1, since a key
// can never reach a sub-one access threshold.
func New[K comparable, V any](opt Options) *Cache[K, V] {
	if opt.MainCapacity < 0 {
		panic("lruk: MainCapacity must be >= 0")
	}
	if opt.HistoryCapacity < 0 {
		panic("lruk: HistoryCapacity must be >= 0")
	}
	if opt.K < 1 {
		panic("lruk: K must be >= 1")
	}
	m := opt.Metrics
	if m == nil {
		m = cache.NoopMetrics{}
	}
	return &Cache[K, V]{
		main:         list.New[K, V](),
		history:      list.New[K, int64](),
		staging:      make(map[K]V),
		mainCapacity: opt.MainCapacity,
		historyCap:   opt.HistoryCapacity,
		k:            int64(opt.K),
		metrics:      m,
	}
}

// Put stores v under k. An entry already in main is overwritten and
// touched; otherwise the access count is incremented and v is staged,
// promoting to main once the count reaches K (spec.md §4.4).
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mainCapacity <= 0 {
		return
	}
	if n, ok := c.main.Lookup(k); ok {
		n.Val = v
		c.main.SpliceBack(n)
		return
	}
	c.staging[k] = v
	if c.bumpHistoryLocked(k) >= c.k {
		c.promoteLocked(k)
	}
	c.metrics.Size(c.main.Len())
}

// Get returns the value for k. A main hit is promoted normally; a miss
// still counts toward admission and can itself trigger promotion and a
// returned value once the threshold is reached (spec.md §4.4).
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.main.Lookup(k); ok {
		n.Count++
		c.main.SpliceBack(n)
		c.hits.Add(1)
		c.metrics.Hit()
		return n.Val, true
	}

	count := c.bumpHistoryLocked(k)
	if v, staged := c.staging[k]; staged && count >= c.k {
		c.promoteLocked(k)
		c.hits.Add(1)
		c.metrics.Hit()
		return v, true
	}
	c.misses.Add(1)
	c.metrics.Miss()
	var zero V
	return zero, false
}

// GetOrZero returns the value for k, or the zero value of V on a miss.
func (c *Cache[K, V]) GetOrZero(k K) V {
	v, _ := c.Get(k)
	return v
}

// Len returns the number of entries resident in main (history/staging
// are not user-visible entries).
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}

// Purge removes every resident entry plus all history and staging state.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main.Clear()
	c.history.Clear()
	c.staging = make(map[K]V)
	c.metrics.Size(0)
}

// -------------------- internals (mu held) --------------------

// bumpHistoryLocked increments k's access count, creating a history
// record (evicting the stalest tracked key if the history is full) when
// k is seen for the first time.
func (c *Cache[K, V]) bumpHistoryLocked(k K) int64 {
	if n, ok := c.history.Lookup(k); ok {
		n.Val++
		c.history.SpliceBack(n)
		return n.Val
	}
	if c.historyCap > 0 && c.history.Len() >= c.historyCap {
		if victim := c.history.Front(); victim != nil {
			c.history.Remove(victim)
			delete(c.staging, victim.Key)
		}
	}
	n := c.history.InsertBack(k, 1)
	return n.Val
}

// promoteLocked moves k's staged value into main, dropping its history
// and staging records, evicting main's stalest entry first if full.
func (c *Cache[K, V]) promoteLocked(k K) {
	v, ok := c.staging[k]
	if !ok {
		return
	}
	delete(c.staging, k)
	if n, ok := c.history.Take(k); ok {
		_ = n // history bookkeeping only; node is discarded
	}
	if c.main.Len() >= c.mainCapacity {
		if victim := c.main.Front(); victim != nil {
			c.main.Remove(victim)
		}
	}
	c.main.InsertBack(k, v)
	c.promoted.Add(1)
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)
