package sharded

import (
	"testing"

	"github.com/arcmeld/adaptivecache/cache"
	"github.com/arcmeld/adaptivecache/policy/lru"
	"golang.org/x/sync/errgroup"
)

func newLRUShard(capacity int) cache.Cache[int, int] {
	return lru.New[int, int](lru.Options{Capacity: capacity})
}

func TestSharded_BasicPutGet(t *testing.T) {
	t.Parallel()

	c := New[int, int](Options[int, int]{
		TotalCapacity: 8,
		ShardCount:    4,
		New:           newLRUShard,
	})
	c.Put(1, 100)

	v, ok := c.Get(1)
	if !ok || v != 100 {
		t.Fatalf("want 1=100, got %v ok=%v", v, ok)
	}
}

// Scenario: total capacity 8, 4 shards, integer keys 0..31. Each shard
// is bounded at 2 resident entries regardless of insertion order.
func TestSharded_PerShardBound(t *testing.T) {
	t.Parallel()

	c := New[int, int](Options[int, int]{
		TotalCapacity: 8,
		ShardCount:    4,
		New:           newLRUShard,
	})
	for k := 0; k < 32; k++ {
		c.Put(k, k)
	}

	if c.ShardCount() != 4 {
		t.Fatalf("want 4 shards, got %d", c.ShardCount())
	}
	for _, s := range c.shards {
		if n := s.Len(); n > 2 {
			t.Fatalf("want every shard bounded at 2, got %d", n)
		}
	}
	if total := c.Len(); total > 8 {
		t.Fatalf("want aggregate len <= 8, got %d", total)
	}
}

func TestSharded_DefaultShardCountIsPositive(t *testing.T) {
	t.Parallel()

	c := New[int, int](Options[int, int]{
		TotalCapacity: 16,
		New:           newLRUShard,
	})
	if c.ShardCount() < 1 {
		t.Fatalf("default shard count must be >= 1, got %d", c.ShardCount())
	}
}

func TestSharded_PurgeClearsEveryShard(t *testing.T) {
	t.Parallel()

	c := New[int, int](Options[int, int]{
		TotalCapacity: 8,
		ShardCount:    4,
		New:           newLRUShard,
	})
	for k := 0; k < 8; k++ {
		c.Put(k, k)
	}
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("want len 0 after Purge, got %d", c.Len())
	}
	for k := 0; k < 8; k++ {
		if _, ok := c.Get(k); ok {
			t.Fatalf("key %d must be gone after Purge", k)
		}
	}
}

func TestSharded_NewWithoutConstructorPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("New must panic when Options.New is nil")
		}
	}()
	New[int, int](Options[int, int]{TotalCapacity: 4})
}

func TestSharded_ConcurrentAccessAcrossShards(t *testing.T) {
	c := New[int, int](Options[int, int]{
		TotalCapacity: 256,
		ShardCount:    8,
		New:           newLRUShard,
	})

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				k := i*1000 + j%16
				c.Put(k, j)
				c.Get(k)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
