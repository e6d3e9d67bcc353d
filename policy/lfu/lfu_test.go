package lfu

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestLFU_BasicPutGet(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 8})
	c.Put("a", 1)

	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Fatalf("want a=1, got %v ok=%v", v, ok)
	}
}

// Eviction picks the minimum-frequency entry, breaking ties by recency
// (stale end of that frequency's bucket).
func TestLFU_EvictsLowestFrequencyFirst(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 2, MaxAverage: 100})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // a now at frequency 2, b stays at 1

	c.Put("c", 3) // overflow -> evict b (minFreq == 1)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b (lowest frequency) must be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatal("a must survive")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatal("c must be present")
	}
}

func TestLFU_TieAtMinFreqEvictsStaleEnd(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 2, MaxAverage: 100})
	c.Put("a", 1) // bucket(1): a
	c.Put("b", 2) // bucket(1): a, b (a is stale end)

	c.Put("c", 3) // both a,b at freq 1 -> evict stale end (a)

	if _, ok := c.Get("a"); ok {
		t.Fatal("a (stale end of the tied bucket) must be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("b must survive the tie")
	}
}

func TestLFU_PutExistingKeyPromotesFrequency(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 2, MaxAverage: 100})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 11) // promotes a's frequency like a Get hit would

	c.Put("c", 3) // overflow -> evict b (still at freq 1)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b must be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 11 {
		t.Fatalf("want a=11, got %v ok=%v", v, ok)
	}
}

// Ageing subtracts MaxAverage/2 from every frequency (floor 1) once the
// running average crosses MaxAverage, so a long-cold key regains eviction
// eligibility relative to a recently hot one (spec.md §4.3 "Ageing").
func TestLFU_AgeingReducesFrequencies(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 3, MaxAverage: 2})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	for i := 0; i < 10; i++ {
		c.Get("a")
	}
	// The sixth hit pushes totalFreq/size to 9/3 = 3 > MaxAverage=2, so
	// ageing fires (and fires again on every later hit), keeping the
	// average at 8/3 = 2; without ageing it would be 13/3 = 4.
	if c.totalFreq/int64(len(c.nodes)) > c.maxAverage {
		t.Fatalf("ageing must keep the running average near maxAverage, got avg=%d", c.totalFreq/int64(len(c.nodes)))
	}
}

func TestLFU_NewWithNegativeCapacityPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("New must panic when Capacity is negative")
		}
	}()
	New[string, int](Options{Capacity: -1})
}

func TestLFU_ZeroCapacityNeverStores(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 0})
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("zero-capacity cache must never retain entries")
	}
}

func TestLFU_Purge(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options{Capacity: 4})
	c.Put("a", 1)
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("want len 0 after Purge, got %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("a must be gone after Purge")
	}
}

func TestLFU_ConcurrentAccess(t *testing.T) {
	c := New[string, int](Options{Capacity: 64})

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			k := fmt.Sprintf("k%d", i%8)
			for j := 0; j < 200; j++ {
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
