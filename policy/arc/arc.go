// Package arc implements the Adaptive Replacement Cache: two resident
// sub-caches (T1 recency, T2 frequency) each shadowed by a ghost list
// (B1, B2) of formerly resident keys, with capacity dynamically
// reallocated between T1 and T2 on ghost hits (spec.md §4.5).
package arc

import (
	"sync"

	"github.com/arcmeld/adaptivecache/cache"
	"github.com/arcmeld/adaptivecache/internal/list"
	"github.com/arcmeld/adaptivecache/internal/util"
)

// DefaultTransformThreshold is used when Options.TransformThreshold <= 0.
const DefaultTransformThreshold = 2

// Options configures an ARC engine.
type Options struct {
	// Capacity is applied to each sub-cache initially, so T1 and T2 are
	// each constructed at capacity C: effective residency can reach 2C
	// at steady state. This mirrors the documented source behavior
	// rather than splitting C/2 per sub-cache (spec.md §9 Open Questions).
	Capacity int

	// TransformThreshold is the T1 access count at which an entry is
	// promoted (copied) into T2. Zero selects DefaultTransformThreshold.
	TransformThreshold int

	Metrics cache.Metrics
}

// Cache is a single-lock ARC engine.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	t1 *list.Index[K, V] // recency resident set
	t2 *t2store[K, V]    // frequency (LFU-like) resident set

	b1 *list.Index[K, struct{}] // ghosts shadowing T1
	b2 *list.Index[K, struct{}] // ghosts shadowing T2

	c1, c2    int // current T1/T2 capacities; c1+c2 is invariant
	threshold int64

	metrics cache.Metrics

	_       util.CacheLinePad
	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	evicted util.PaddedAtomicInt64
}

// Stats returns the engine's own hit/miss/eviction counters (summed
// across T1 and T2), tracked independently of whatever external Metrics
// implementation is plugged in.
func (c *Cache[K, V]) Stats() (hits, misses, evicted int64) {
	return c.hits.Load(), c.misses.Load(), c.evicted.Load()
}

// New constructs an ARC engine with the given options. It panics if
// Capacity is negative: 0 is the legal, permanently-empty configuration
// (spec.md §7), but a negative capacity is a programmer error.
func New[K comparable, V any](opt Options) *Cache[K, V] {
	if opt.Capacity < 0 {
		panic("arc: Capacity must be >= 0")
	}
	m := opt.Metrics
	if m == nil {
		m = cache.NoopMetrics{}
	}
	threshold := int64(opt.TransformThreshold)
	if threshold <= 0 {
		threshold = DefaultTransformThreshold
	}
	return &Cache[K, V]{
		t1:        list.New[K, V](),
		t2:        newT2Store[K, V](),
		b1:        list.New[K, struct{}](),
		b2:        list.New[K, struct{}](),
		c1:        opt.Capacity,
		c2:        opt.Capacity,
		threshold: threshold,
		metrics:   m,
	}
}

// Put stores v under k: it always lands (or is refreshed) in T1, and if
// k already lives in T2 that copy is refreshed too, keeping both copies
// coherent while T2 holds the promoted-hot form (spec.md §4.5).
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.c1+c.c2 <= 0 {
		return
	}
	c.rebalanceLocked(k)

	if n, ok := c.t1.Lookup(k); ok {
		n.Val = v
		c.t1.SpliceBack(n)
	} else {
		if c.c1 > 0 {
			if c.t1.Len() >= c.c1 {
				c.evictT1Locked()
			}
			c.t1.InsertBack(k, v)
		}
	}
	if n2, ok := c.t2.lookup(k); ok {
		n2.Val = v
	}
	c.metrics.Size(c.t1.Len() + c.t2.len())
}

// Get returns the value for k. A T1 hit increments its access count and,
// once the count reaches the transform threshold, copies the entry into
// T2 without removing it from T1 (the stale T1 copy ages out normally).
// Otherwise T2 is consulted, which performs its own frequency promotion.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rebalanceLocked(k)

	if n, ok := c.t1.Lookup(k); ok {
		c.t1.SpliceBack(n)
		n.Count++
		v := n.Val
		if n.Count >= c.threshold {
			c.admitT2Locked(k, v)
		}
		c.hits.Add(1)
		c.metrics.Hit()
		return v, true
	}
	if v, ok := c.t2.get(k); ok {
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

// Len returns the number of entries resident across T1 and T2 (a key
// promoted into T2 while still aging out of T1 is counted once per
// sub-cache, matching the "up to 2C" steady-state residency spec.md §9
// documents).
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t1.Len() + c.t2.len()
}

// Purge removes every resident and ghost entry, restoring the initial
// capacity split.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.c1 + c.c2
	c.t1.Clear()
	c.t2 = newT2Store[K, V]()
	c.b1.Clear()
	c.b2.Clear()
	c.c1 = total / 2
	c.c2 = total - c.c1
	c.metrics.Size(0)
}

// -------------------- internals (mu held) --------------------

// admitT2Locked copies (k, v) into T2, creating the entry at frequency 1
// if absent or refreshing its value if already resident.
func (c *Cache[K, V]) admitT2Locked(k K, v V) {
	if n, ok := c.t2.lookup(k); ok {
		n.Val = v
		return
	}
	if c.c2 > 0 && c.t2.len() >= c.c2 {
		c.evictT2Locked()
	}
	if c.c2 > 0 {
		c.t2.insert(k, v)
	}
}

// evictT1Locked drops T1's stale end into B1, trimming B1's oldest ghost
// outright if it overflows.
func (c *Cache[K, V]) evictT1Locked() {
	victim := c.t1.Front()
	if victim == nil {
		return
	}
	c.t1.Remove(victim)
	c.ghostAppend(c.b1, victim.Key, c.c1)
	c.evicted.Add(1)
}

// evictT2Locked drops T2's minimum-frequency stale entry into B2.
func (c *Cache[K, V]) evictT2Locked() {
	k, ok := c.t2.evictOne()
	if !ok {
		return
	}
	c.ghostAppend(c.b2, k, c.c2)
	c.evicted.Add(1)
}

// ghostAppend records k as a ghost in b, trimming the stalest ghost
// outright if the ghost list (tracking the corresponding sub-cache's
// capacity) overflows.
func (c *Cache[K, V]) ghostAppend(b *list.Index[K, struct{}], k K, capacity int) {
	if capacity <= 0 {
		return
	}
	if n, ok := b.Lookup(k); ok {
		b.SpliceBack(n)
		return
	}
	if b.Len() >= capacity {
		if oldest := b.Front(); oldest != nil {
			b.Remove(oldest)
		}
	}
	b.InsertBack(k, struct{}{})
}

// rebalanceLocked implements the ghost-driven capacity transfer run
// before every Put/Get (spec.md §4.5 "Ghost-driven rebalance"): a hit in
// B1 means recency was under-provisioned (grow c1 at c2's expense); a
// hit in B2 means frequency was under-provisioned (grow c2 at c1's
// expense). The ghost record is removed once matched either way.
func (c *Cache[K, V]) rebalanceLocked(k K) {
	if n, ok := c.b1.Lookup(k); ok {
		if c.tryDecreaseC2() {
			c.c1++
		}
		c.b1.Remove(n)
		return
	}
	if n, ok := c.b2.Lookup(k); ok {
		if c.tryDecreaseC1() {
			c.c2++
		}
		c.b2.Remove(n)
	}
}

// tryDecreaseC1/tryDecreaseC2 attempt capacity--, refusing when the
// capacity is already zero (spec.md §7: "Capacity decrease on a
// zero-capacity sub-cache returns a negative result"). If the decrease
// would underflow the sub-cache's current resident count, one entry is
// evicted into its ghost list first to honour the new bound.
func (c *Cache[K, V]) tryDecreaseC1() bool {
	if c.c1 <= 0 {
		return false
	}
	c.c1--
	if c.t1.Len() > c.c1 {
		c.evictT1Locked()
	}
	return true
}

func (c *Cache[K, V]) tryDecreaseC2() bool {
	if c.c2 <= 0 {
		return false
	}
	c.c2--
	if c.t2.len() > c.c2 {
		c.evictT2Locked()
	}
	return true
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)
