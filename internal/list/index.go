package list

// Index pairs a List with a map[K]*Node for O(1) key lookup, satisfying
// the data model's invariant that "a key is present in the map iff its
// node is linked between the sentinels" (spec.md §3). Every resident
// eviction engine (LRU, ARC's T1/ghosts, LRU-K's main/history) is built
// directly on an Index.
type Index[K comparable, V any] struct {
	l *List[K, V]
	m map[K]*Node[K, V]
}

// New allocates an empty Index.
func New[K comparable, V any]() *Index[K, V] {
	return &Index[K, V]{l: New[K, V](), m: make(map[K]*Node[K, V])}
}

// Len returns the number of resident entries.
func (x *Index[K, V]) Len() int { return x.l.Len() }

// Lookup returns the node for k, if present.
func (x *Index[K, V]) Lookup(k K) (*Node[K, V], bool) {
	n, ok := x.m[k]
	return n, ok
}

// Front returns the stale-end node, or nil if empty.
func (x *Index[K, V]) Front() *Node[K, V] { return x.l.Front() }

// Back returns the fresh-end node, or nil if empty.
func (x *Index[K, V]) Back() *Node[K, V] { return x.l.Back() }

// InsertFront creates a new node for a key not yet present and links it
// at the stale end. Callers must check Lookup first; InsertFront does not
// guard against duplicates.
func (x *Index[K, V]) InsertFront(k K, v V) *Node[K, V] {
	n := &Node[K, V]{Key: k, Val: v}
	x.l.PushFront(n)
	x.m[k] = n
	return n
}

// InsertBack creates a new node for a key not yet present and links it
// at the fresh end.
func (x *Index[K, V]) InsertBack(k K, v V) *Node[K, V] {
	n := &Node[K, V]{Key: k, Val: v}
	x.l.PushBack(n)
	x.m[k] = n
	return n
}

// SpliceFront repositions an already-resident node to the stale end.
func (x *Index[K, V]) SpliceFront(n *Node[K, V]) { x.l.SpliceFront(n) }

// SpliceBack repositions an already-resident node to the fresh end.
func (x *Index[K, V]) SpliceBack(n *Node[K, V]) { x.l.SpliceBack(n) }

// Remove detaches n from the list and deletes its map entry — the only
// way a resident entry is fully destroyed (spec.md §3 "Lifecycles").
func (x *Index[K, V]) Remove(n *Node[K, V]) {
	x.l.Detach(n)
	delete(x.m, n.Key)
}

// Take detaches and removes k, returning its node so a caller can re-link
// it into a different Index of the same type (AdoptFront/AdoptBack)
// without reallocating, or simply drop it (LRU-K discards a promoted
// key's history record this way).
func (x *Index[K, V]) Take(k K) (*Node[K, V], bool) {
	n, ok := x.m[k]
	if !ok {
		return nil, false
	}
	x.l.Detach(n)
	delete(x.m, k)
	return n, true
}

// AdoptFront links a node produced by another Index's Take into this
// Index at the stale end.
func (x *Index[K, V]) AdoptFront(n *Node[K, V]) {
	x.l.PushFront(n)
	x.m[n.Key] = n
}

// AdoptBack links a node produced by another Index's Take into this
// Index at the fresh end.
func (x *Index[K, V]) AdoptBack(n *Node[K, V]) {
	x.l.PushBack(n)
	x.m[n.Key] = n
}

// Clear empties the index in O(1) by discarding the list and map; used by
// an engine's Purge.
func (x *Index[K, V]) Clear() {
	x.l = New[K, V]()
	x.m = make(map[K]*Node[K, V])
}
