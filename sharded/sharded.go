// Package sharded partitions the key space of any cache.Cache[K,V] engine
// across N independent instances to reduce lock contention, at the cost
// of cross-key ordering guarantees (spec.md §4.6).
package sharded

import (
	"github.com/arcmeld/adaptivecache/cache"
	"github.com/arcmeld/adaptivecache/internal/util"
)

// New builds a per-shard engine; it is handed the per-shard capacity
// (TotalCapacity split evenly, ceil division) and must return a fresh,
// independent cache.Cache[K,V].
type Options[K comparable, V any] struct {
	// TotalCapacity is the aggregate entry budget split across shards.
	TotalCapacity int

	// ShardCount selects the number of shards. <= 0 defaults to hardware
	// parallelism (spec.md §4.6).
	ShardCount int

	// New constructs one shard's engine given its per-shard capacity.
	// Called once per shard at construction time.
	New func(perShardCapacity int) cache.Cache[K, V]

	// Hash overrides the key-hashing function; nil defaults to FNV-1a
	// via internal/util.Fnv64a. Must be a pure, deterministic function
	// of the key for the wrapper's lifetime (spec.md §4.6).
	Hash func(K) uint64
}

// Cache is the sharded wrapper: N independent engines routed by
// hash(k) mod N, with no cross-shard coordination or ordering.
type Cache[K comparable, V any] struct {
	shards []cache.Cache[K, V]
	hash   func(K) uint64
}

// New constructs a sharded wrapper per opt.
func New[K comparable, V any](opt Options[K, V]) *Cache[K, V] {
	if opt.New == nil {
		panic("sharded: Options.New constructor must not be nil")
	}

	n := opt.ShardCount
	if n <= 0 {
		n = util.DefaultShardCount()
	}

	hash := opt.Hash
	if hash == nil {
		hash = util.Fnv64a[K]
	}

	perShard := (opt.TotalCapacity + n - 1) / n
	shards := make([]cache.Cache[K, V], n)
	for i := range shards {
		shards[i] = opt.New(perShard)
	}

	return &Cache[K, V]{shards: shards, hash: hash}
}

// Put routes k to its shard and stores v there.
func (c *Cache[K, V]) Put(k K, v V) { c.shardFor(k).Put(k, v) }

// Get routes k to its shard and returns its value and presence there.
func (c *Cache[K, V]) Get(k K) (V, bool) { return c.shardFor(k).Get(k) }

// GetOrZero routes k to its shard and returns its value, or the zero
// value of V on a miss.
func (c *Cache[K, V]) GetOrZero(k K) V { return c.shardFor(k).GetOrZero(k) }

// Len returns the aggregate resident count across every shard.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Purge clears every shard (spec.md §4.6: "Purge iterates shards").
func (c *Cache[K, V]) Purge() {
	for _, s := range c.shards {
		s.Purge()
	}
}

// ShardCount reports how many independent engines back this wrapper.
func (c *Cache[K, V]) ShardCount() int { return len(c.shards) }

// shardFor picks the shard owning k.
func (c *Cache[K, V]) shardFor(k K) cache.Cache[K, V] {
	idx := util.ShardIndex(c.hash(k), len(c.shards))
	return c.shards[idx]
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)
