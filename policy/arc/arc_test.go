package arc

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestARC_BasicPutGet(t *testing.T) {
	t.Parallel()

	c := New[int, string](Options{Capacity: 2, TransformThreshold: 2})
	c.Put(1, "a")

	v, ok := c.Get(1)
	if !ok || v != "a" {
		t.Fatalf("want 1=a, got %v ok=%v", v, ok)
	}
}

// Scenario: C=2, threshold=2. Inserting 1,2,3,4 evicts 1 and 2 from T1
// into B1 in insertion order.
func TestARC_OverflowGhostsStaleEntries(t *testing.T) {
	t.Parallel()

	c := New[int, string](Options{Capacity: 2, TransformThreshold: 2})
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")
	c.Put(4, "d")

	if _, ok := c.t1.Lookup(1); ok {
		t.Fatal("1 must have been evicted from T1")
	}
	if _, ok := c.b1.Lookup(1); !ok {
		t.Fatal("1 must be ghosted in B1")
	}
	if _, ok := c.b1.Lookup(2); !ok {
		t.Fatal("2 must be ghosted in B1")
	}
	if v, ok := c.Get(3); !ok || v != "c" {
		t.Fatal("3 must still be resident in T1")
	}
	if v, ok := c.Get(4); !ok || v != "d" {
		t.Fatal("4 must still be resident in T1")
	}
}

// A B1 ghost hit rebalances capacity toward T1 (c1++, c2--) immediately.
// Ghosts carry no value (spec.md §3), so the hit itself is still a miss;
// the key is only resident again once a subsequent Put re-admits it.
func TestARC_GhostHitRebalancesCapacityButStillMisses(t *testing.T) {
	t.Parallel()

	c := New[int, string](Options{Capacity: 2, TransformThreshold: 2})
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")
	c.Put(4, "d") // 1 (evicted by Put(3)) and 2 are now ghosts in B1

	c1Before := c.c1
	c2Before := c.c2

	if _, ok := c.Get(1); ok {
		t.Fatal("a ghosted key must still report a miss on Get")
	}
	if c.c1 != c1Before+1 {
		t.Fatalf("want c1 incremented after B1 hit, got %d -> %d", c1Before, c.c1)
	}
	if c.c2 != c2Before-1 {
		t.Fatalf("want c2 decremented after B1 hit, got %d -> %d", c2Before, c.c2)
	}
	if _, ok := c.b1.Lookup(1); ok {
		t.Fatal("the matched ghost record must be removed from B1")
	}

	// Re-admission happens on the next Put.
	c.Put(1, "a-again")
	if v, ok := c.Get(1); !ok || v != "a-again" {
		t.Fatal("1 must be resident in T1 again after the follow-up Put")
	}
}

// A T1 entry promotes into T2 once its access count reaches the
// transform threshold, without being removed from T1.
func TestARC_PromotionToT2AtThreshold(t *testing.T) {
	t.Parallel()

	c := New[int, string](Options{Capacity: 4, TransformThreshold: 2})
	c.Put(1, "a")
	c.Get(1) // count 0 -> 1
	c.Get(1) // count 1 -> 2, reaches threshold -> copied into T2

	if _, ok := c.t1.Lookup(1); !ok {
		t.Fatal("1 must remain in T1 after promotion (T1 copy is not removed)")
	}
	if _, ok := c.t2.lookup(1); !ok {
		t.Fatal("1 must also be copied into T2 once the threshold is reached")
	}
}

func TestARC_NewWithNegativeCapacityPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("New must panic when Capacity is negative")
		}
	}()
	New[int, string](Options{Capacity: -1})
}

func TestARC_ZeroCapacityNeverStores(t *testing.T) {
	t.Parallel()

	c := New[int, string](Options{Capacity: 0})
	c.Put(1, "a")
	if _, ok := c.Get(1); ok {
		t.Fatal("zero-capacity cache must never retain entries")
	}
}

func TestARC_Purge(t *testing.T) {
	t.Parallel()

	c := New[int, string](Options{Capacity: 4})
	c.Put(1, "a")
	c.Get(1)
	c.Get(1) // promote into T2 too

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("want len 0 after Purge, got %d", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("1 must be gone after Purge")
	}
}

func TestARC_ConcurrentAccess(t *testing.T) {
	c := New[int, int](Options{Capacity: 64, TransformThreshold: 2})

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				k := i%16 + (j % 3)
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
