package replacement

const nilIdx = int32(-1)

type node struct {
	tag       uint64
	lineIndex int
	prev      int32
	next      int32
}

/*
nodeArena keeps the ordering list nodes in a flat slice addressed by
index instead of chasing heap pointers. Freed slots are chained through
their next field into a free list and reused, so a long lived policy
settles on a fixed allocation no larger than the set's way count.

The list runs oldest (head) to newest (tail). All operations are O(1).
*/
type nodeArena struct {
	nodes    []node
	head     int32
	tail     int32
	freeHead int32
}

func newNodeArena(capacityHint int) *nodeArena {
	return &nodeArena{
		nodes:    make([]node, 0, capacityHint),
		head:     nilIdx,
		tail:     nilIdx,
		freeHead: nilIdx,
	}
}

// alloc grabs a slot off the free list or grows the slice. The returned
// node is detached; callers link it with pushTail.
func (a *nodeArena) alloc(tag uint64, lineIndex int) int32 {
	if a.freeHead != nilIdx {
		idx := a.freeHead
		a.freeHead = a.nodes[idx].next
		a.nodes[idx] = node{tag: tag, lineIndex: lineIndex, prev: nilIdx, next: nilIdx}
		return idx
	}

	a.nodes = append(a.nodes, node{tag: tag, lineIndex: lineIndex, prev: nilIdx, next: nilIdx})
	return int32(len(a.nodes) - 1)
}

// release returns a detached slot to the free list.
func (a *nodeArena) release(idx int32) {
	a.nodes[idx] = node{prev: nilIdx, next: a.freeHead}
	a.freeHead = idx
}

// pushTail links a detached node in as the newest entry.
func (a *nodeArena) pushTail(idx int32) {
	n := &a.nodes[idx]
	n.prev = a.tail
	n.next = nilIdx

	if a.tail != nilIdx {
		a.nodes[a.tail].next = idx
	} else {
		a.head = idx
	}
	a.tail = idx
}

// detach unlinks a node from anywhere in the list without releasing its
// slot, so it can be re-appended at the tail.
func (a *nodeArena) detach(idx int32) {
	n := a.nodes[idx]

	if n.prev != nilIdx {
		a.nodes[n.prev].next = n.next
	} else {
		a.head = n.next
	}

	if n.next != nilIdx {
		a.nodes[n.next].prev = n.prev
	} else {
		a.tail = n.prev
	}

	a.nodes[idx].prev = nilIdx
	a.nodes[idx].next = nilIdx
}
