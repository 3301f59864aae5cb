package cache

// lruNode is a node in a doubly-linked LRU list.
// The node stores a key for O(1) deletion from the parent map.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a circular doubly-linked list around a sentinel root.
// root.next is the most recently used node, root.prev the least.
// The list is not thread-safe; callers must handle synchronization.
type lruList[K comparable] struct {
	root lruNode[K]
	len  int
}

// init empties the list.
func (l *lruList[K]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

// pushFront adds key as the most recently used node.
func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertAfter(n, &l.root)
	l.len++
	return n
}

// moveToFront marks n as the most recently used node.
func (l *lruList[K]) moveToFront(n *lruNode[K]) {
	if l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertAfter(n, &l.root)
}

// removeOldest removes and returns the key of the least recently used node.
// Returns zero value and false if list is empty.
func (l *lruList[K]) removeOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.unlink(n)
	l.len--
	return n.key, true
}

func (l *lruList[K]) insertAfter(n, at *lruNode[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}
