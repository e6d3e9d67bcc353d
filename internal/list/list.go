// Package list implements the intrusive, sentinel-delimited doubly linked
// list shared by every eviction engine, plus a map-backed Index that adds
// O(1) key lookup on top of it.
//
// Two dummy nodes (head and tail) delimit the list so interior splice/erase
// never branches on nil. By convention Front() is the stale end (adjacent
// to the head sentinel, the usual eviction candidate) and Back() is the
// fresh end (adjacent to the tail sentinel, where new or just-touched
// entries land) — the same head/tail convention spec.md §4.2 and §4.9
// describe.
package list

// Node is an intrusive list element owned by exactly one List at a time.
// Count is the generic access counter from the data model (spec.md §3);
// engines that don't need it simply never touch it.
type Node[K comparable, V any] struct {
	Key   K
	Val   V
	Count int64

	prev, next *Node[K, V]
	owner      *List[K, V] // nil when detached; used by Detach/SpliceFront/SpliceBack
}

// List is the bare two-sentinel doubly linked list: no map, no locking.
// Higher-level engines layer their own membership bookkeeping on top
// (either Index below, or a plain map the engine already maintains).
type List[K comparable, V any] struct {
	head, tail *Node[K, V] // sentinels; head.next ... tail.prev are real nodes
	n          int
}

// New allocates an empty list with its two sentinels linked together.
func New[K comparable, V any]() *List[K, V] {
	l := &List[K, V]{
		head: &Node[K, V]{},
		tail: &Node[K, V]{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

// Len returns the number of real (non-sentinel) nodes.
func (l *List[K, V]) Len() int { return l.n }

// Front returns the node adjacent to the head sentinel (stale end), or nil.
func (l *List[K, V]) Front() *Node[K, V] {
	if l.n == 0 {
		return nil
	}
	return l.head.next
}

// Back returns the node adjacent to the tail sentinel (fresh end), or nil.
func (l *List[K, V]) Back() *Node[K, V] {
	if l.n == 0 {
		return nil
	}
	return l.tail.prev
}

// link splices a detached node in between a and b (a.next == b going in).
func (l *List[K, V]) link(a, n, b *Node[K, V]) {
	a.next = n
	n.prev = a
	n.next = b
	b.prev = n
	n.owner = l
	l.n++
}

// PushFront inserts a freshly allocated, detached node at the stale end.
func (l *List[K, V]) PushFront(n *Node[K, V]) { l.link(l.head, n, l.head.next) }

// PushBack inserts a freshly allocated, detached node at the fresh end.
func (l *List[K, V]) PushBack(n *Node[K, V]) { l.link(l.tail.prev, n, l.tail) }

// Detach unlinks n from this list in O(1). n must currently belong to l.
// It does not touch any external key->node map.
func (l *List[K, V]) Detach(n *Node[K, V]) {
	if n.owner != l {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next, n.owner = nil, nil, nil
	l.n--
}

// SpliceFront moves an already-linked node of this list to the stale end.
// n must already belong to l; moving a node between two different Lists
// is Take/Adopt's job (see Index), not Splice's.
func (l *List[K, V]) SpliceFront(n *Node[K, V]) {
	if n.owner == l && l.head.next == n {
		return
	}
	l.Detach(n)
	l.PushFront(n)
}

// SpliceBack moves an already-linked node of this list to the fresh end.
func (l *List[K, V]) SpliceBack(n *Node[K, V]) {
	if n.owner == l && l.tail.prev == n {
		return
	}
	l.Detach(n)
	l.PushBack(n)
}
