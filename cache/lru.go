package cache

// lruNode is a node in the intrusive doubly-linked recency list.
type lruNode[K any] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList tracks entry recency per shard. The front holds the most recently
// used key, the back the eviction candidate. A sentinel root keeps the link
// manipulation branch-free.
type lruList[K any] struct {
	root lruNode[K]
	n    int
}

// newLRUList returns an empty, initialized recency list.
func newLRUList[K any]() *lruList[K] {
	l := &lruList[K]{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

// Len returns the number of keys in the list.
func (l *lruList[K]) Len() int { return l.n }

// PushFront inserts key at the front and returns its node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	l.insertAfter(node, &l.root)
	l.n++
	return node
}

// MoveToFront marks the node as most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if l.root.next == node {
		return
	}
	l.unlink(node)
	l.insertAfter(node, &l.root)
}

// Remove unlinks the node from the list.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	l.unlink(node)
	l.n--
}

// RemoveOldest unlinks and returns the least recently used key.
// Returns (zero, false) on an empty list.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.n == 0 {
		var zero K
		return zero, false
	}
	oldest := l.root.prev
	l.Remove(oldest)
	return oldest.key, true
}

// Clear resets the list to empty.
func (l *lruList[K]) Clear() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.n = 0
}

func (l *lruList[K]) insertAfter(node, at *lruNode[K]) {
	node.prev = at
	node.next = at.next
	at.next.prev = node
	at.next = node
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev = nil
	node.next = nil
}
