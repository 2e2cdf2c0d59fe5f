package replacement

import (
	"sync"

	"nway-cache/utils/locks"
)

/*
recency is the default LRU/MRU policy: a hash table from tag to arena
node index for O(1) lookup, plus the arena backed ordering list for O(1)
reordering and victim selection. LRU evicts the head (oldest access),
MRU evicts the tail (newest access).

Invariant: index and list always agree. Every listed node has exactly
one index entry and vice versa.
*/
type recency struct {
	lock  sync.Locker
	kind  Kind
	index map[uint64]int32
	list  *nodeArena
}

// NewRecency builds the built-in LRU/MRU policy. threadSafe must match
// the mode the owning cache was constructed with.
func NewRecency(kind Kind, threadSafe bool) Policy {
	return &recency{
		lock:  locks.New(threadSafe),
		kind:  kind,
		index: make(map[uint64]int32),
		list:  newNodeArena(0),
	}
}

func (r *recency) RecordAccess(tag uint64, lineIndex int) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if idx, ok := r.index[tag]; ok {
		r.list.detach(idx)
		r.list.pushTail(idx)
		return
	}

	idx := r.list.alloc(tag, lineIndex)
	r.list.pushTail(idx)
	r.index[tag] = idx
}

func (r *recency) SelectVictim() (uint64, int, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	idx := r.list.head
	if r.kind == MRU {
		idx = r.list.tail
	}
	if idx == nilIdx {
		return 0, 0, false
	}

	victim := r.list.nodes[idx]
	r.list.detach(idx)
	r.list.release(idx)
	delete(r.index, victim.tag)

	return victim.tag, victim.lineIndex, true
}

func (r *recency) Size() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.index)
}

func (r *recency) OnDelete(tag uint64, lineEmptied bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	idx, tracked := r.index[tag]

	if !lineEmptied {
		// a delete that leaves the line occupied is just another access
		if tracked {
			r.list.detach(idx)
			r.list.pushTail(idx)
			return
		}
		idx = r.list.alloc(tag, 0)
		r.list.pushTail(idx)
		r.index[tag] = idx
		return
	}

	if tracked {
		r.list.detach(idx)
		r.list.release(idx)
		delete(r.index, tag)
	}
}
