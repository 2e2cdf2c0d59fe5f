package cache

import (
	"fmt"
	"sync"

	"nway-cache/utils/locks"
)

/*
cacheLine holds up to 2^b values that share one tag. Occupancy is
tracked per slot, separately from the values, so a stored zero value is
still a hit.

Invariant: count == 0 exactly when hasTag == false. An empty line
carries no tag. The tag changes only on eviction or when the last slot
is deleted.
*/
type cacheLine[V comparable] struct {
	lock     sync.Locker
	hasTag   bool
	tag      uint64
	slots    []V
	occupied []bool
	count    int
}

func newCacheLine[V comparable](offsetSize uint64, threadSafe bool) *cacheLine[V] {
	return &cacheLine[V]{
		lock:     locks.New(threadSafe),
		slots:    make([]V, offsetSize),
		occupied: make([]bool, offsetSize),
	}
}

func (l *cacheLine[V]) matchTag(tag uint64) bool {
	return l.hasTag && l.tag == tag
}

func (l *cacheLine[V]) setTag(tag uint64) {
	l.hasTag = true
	l.tag = tag
}

func (l *cacheLine[V]) setSlot(offset uint64, value V) error {
	if offset >= uint64(len(l.slots)) {
		return fmt.Errorf("%w: offset %d, line holds %d slots", ErrOffsetOutOfRange, offset, len(l.slots))
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	// overwriting an occupied slot must not double count
	if !l.occupied[offset] {
		l.occupied[offset] = true
		l.count++
	}
	l.slots[offset] = value

	return nil
}

// getSlot returns the stored value. A slot that was never written reads
// as absent, never as an error, even on a tag hit.
func (l *cacheLine[V]) getSlot(offset uint64) (V, bool) {
	var zero V
	if offset >= uint64(len(l.slots)) {
		return zero, false
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if !l.occupied[offset] {
		return zero, false
	}
	return l.slots[offset], true
}

/*
deleteSlot clears the slot when it is occupied and holds expected.
matched is false when the slot is unoccupied or the value differs; no
mutation happens in that case. nowEmpty reports that the delete emptied
the whole line; prevTag is the tag the line carried before it was
cleared.
*/
func (l *cacheLine[V]) deleteSlot(offset uint64, expected V) (matched bool, nowEmpty bool, prevTag uint64) {
	if offset >= uint64(len(l.slots)) {
		return false, false, 0
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if !l.occupied[offset] || l.slots[offset] != expected {
		return false, false, 0
	}

	var zero V
	l.slots[offset] = zero
	l.occupied[offset] = false
	l.count--

	if l.count == 0 {
		prevTag = l.tag
		l.hasTag = false
		l.tag = 0
		return true, true, prevTag
	}

	return true, false, 0
}

// clear resets the line to empty so it can be repurposed for a new tag.
func (l *cacheLine[V]) clear() {
	l.lock.Lock()
	defer l.lock.Unlock()

	var zero V
	for i := range l.slots {
		l.slots[i] = zero
		l.occupied[i] = false
	}
	l.count = 0
	l.hasTag = false
	l.tag = 0
}
