// Package adaptivecache is the module root for a generic, in-process
// key/value cache engine with several selectable eviction policies.
//
// Design
//
//   - Policies live under policy/: lru (strict recency), lfu (frequency
//     buckets with periodic ageing), lruk (admission filter requiring K
//     accesses before promotion), and arc (Adaptive Replacement Cache,
//     a recency/frequency composite with ghost-list capacity learning).
//     Each implements the cache.Cache[K,V] facade directly: its own
//     mutex, its own ordered index, no shared shard type.
//
//   - internal/list provides the sentinel-delimited intrusive doubly
//     linked list (List[K,V]) and its map-backed sibling (Index[K,V])
//     that every policy builds its bookkeeping on top of.
//
//   - sharded/ partitions any of the above across N independent engine
//     instances keyed by hash(k) mod N, trading cross-shard ordering
//     guarantees for reduced lock contention.
//
//   - metrics/prom adapts cache.Metrics to Prometheus counters/gauges.
//
// Basic usage
//
//	c := lru.New[string, []byte](lru.Options{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//
// Sharded usage
//
//	sc := sharded.New[string, string](sharded.Options[string, string]{
//	    TotalCapacity: 10_000,
//	    New: func(cap int) cache.Cache[string, string] {
//	        return arc.New[string, string](arc.Options{Capacity: cap})
//	    },
//	})
//
// Thread-safety
//
// All Cache[K,V] methods are safe for concurrent use. Every public
// operation acquires the engine's single mutex at entry and releases it
// at exit; no operation holds the lock across a user callback, because
// there are none.
package adaptivecache
