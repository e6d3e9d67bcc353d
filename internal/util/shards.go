package util

import "runtime"

// DefaultShardCount returns the fallback shard count used when a caller
// passes ShardCount <= 0: hardware parallelism, per spec.md §4.6
// ("defaulting to hardware parallelism when unspecified or non-positive").
func DefaultShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	return p
}

// ShardIndex maps a 64-bit hash to a shard index in [0, shards).
// Uses the fast mask path when shards is a power of two, modulo otherwise.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
