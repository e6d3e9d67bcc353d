// Package cache defines the uniform facade every eviction engine and the
// sharded wrapper implement (spec.md §4.1).
package cache

// Cache is the uniform put/get contract exposed to callers, implemented
// by each eviction engine (policy/lru, policy/lfu, policy/lruk, policy/arc)
// and by the sharded wrapper. No method signals an error: a miss is a
// normal negative outcome, and Put on a zero-capacity cache is a no-op
// (spec.md §7).
//
// All methods are safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] interface {
	// Put stores v under k, creating or overwriting the entry and
	// promoting it according to the active policy.
	Put(k K, v V)

	// Get returns the current value for k and whether it was present.
	// On a hit the entry is promoted according to the active policy.
	Get(k K) (V, bool)

	// GetOrZero is the convenience form of Get that returns the
	// zero value of V on a miss instead of a boolean flag.
	GetOrZero(k K) V

	// Len returns the number of resident entries.
	Len() int

	// Purge removes every resident entry, resetting the engine to its
	// just-constructed state (spec.md §4.6: "Purge iterates shards").
	Purge()
}
