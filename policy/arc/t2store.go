package arc

import "github.com/arcmeld/adaptivecache/internal/list"

// t2store is ARC's frequency-ordered resident sub-cache: an LFU-like
// structure of per-frequency buckets with O(1) promotion, but without
// the ageing mechanism the standalone policy/lfu engine has — spec.md
// §4.5 describes T2 only as "LFU-like with per-frequency buckets",
// never mentioning ageing for ARC specifically.
type t2store[K comparable, V any] struct {
	nodes   map[K]*list.Node[K, V]
	buckets map[int64]*list.List[K, V]
	minFreq int64
}

func newT2Store[K comparable, V any]() *t2store[K, V] {
	return &t2store[K, V]{
		nodes:   make(map[K]*list.Node[K, V]),
		buckets: make(map[int64]*list.List[K, V]),
	}
}

func (s *t2store[K, V]) len() int { return len(s.nodes) }

func (s *t2store[K, V]) lookup(k K) (*list.Node[K, V], bool) {
	n, ok := s.nodes[k]
	return n, ok
}

func (s *t2store[K, V]) bucket(f int64) *list.List[K, V] {
	b, ok := s.buckets[f]
	if !ok {
		b = list.New[K, V]()
		s.buckets[f] = b
	}
	return b
}

// insert admits a brand-new key at frequency 1.
func (s *t2store[K, V]) insert(k K, v V) {
	n := &list.Node[K, V]{Key: k, Val: v, Count: 1}
	s.bucket(1).PushBack(n)
	s.nodes[k] = n
	s.minFreq = 1
}

// get returns the value for k, promoting it to the next frequency
// bucket on a hit, exactly like policy/lfu's promotion (minus ageing).
func (s *t2store[K, V]) get(k K) (V, bool) {
	n, ok := s.nodes[k]
	if !ok {
		var zero V
		return zero, false
	}
	f := n.Count
	old := s.buckets[f]
	old.Detach(n)
	emptied := old.Len() == 0
	if emptied {
		delete(s.buckets, f)
	}
	n.Count = f + 1
	s.bucket(n.Count).PushBack(n)
	if emptied && f == s.minFreq {
		s.minFreq = f + 1
	}
	return n.Val, true
}

// evictOne drops the stale end of the minimum-frequency bucket and
// returns its key, for the caller to ghost.
func (s *t2store[K, V]) evictOne() (K, bool) {
	b, ok := s.buckets[s.minFreq]
	if !ok || b.Len() == 0 {
		var zero K
		return zero, false
	}
	victim := b.Front()
	b.Detach(victim)
	if b.Len() == 0 {
		delete(s.buckets, s.minFreq)
	}
	delete(s.nodes, victim.Key)
	return victim.Key, true
}
