package cache

import (
	"sync"

	"nway-cache/replacement"
	"nway-cache/utils/locks"
)

/*
cacheSet owns a fixed array of nWay lines and one replacement policy.

The set lock is the unit of atomicity: it spans the tag scan, the
eviction and the policy update, so no other goroutine can observe a line
mutated with the policy not yet updated or the other way around. Tags
are unique within a set; at most one line matches any given tag.
*/
type cacheSet[V comparable] struct {
	lock   sync.Locker
	lines  []*cacheLine[V]
	policy replacement.Policy
}

func newCacheSet[V comparable](nWay int, offsetSize uint64, policy replacement.Policy, threadSafe bool) *cacheSet[V] {
	lines := make([]*cacheLine[V], nWay)
	for i := range lines {
		lines[i] = newCacheLine[V](offsetSize, threadSafe)
	}

	return &cacheSet[V]{
		lock:   locks.New(threadSafe),
		lines:  lines,
		policy: policy,
	}
}

/*
put writes value into the line holding tag. A tag match is a hit and
writes in place. On a miss an unused line is taken when one exists,
otherwise the policy picks a victim, the victim line is cleared and
repurposed for the new tag. Every outcome records an access.
*/
func (s *cacheSet[V]) put(tag uint64, offset uint64, value V) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	candidate := -1
	for i, line := range s.lines {
		if line.matchTag(tag) {
			if err := line.setSlot(offset, value); err != nil {
				return err
			}
			s.policy.RecordAccess(tag, i)
			return nil
		}
		if candidate == -1 && !line.hasTag {
			candidate = i
		}
	}

	if candidate == -1 {
		_, victimLine, ok := s.policy.SelectVictim()
		if !ok {
			return ErrNoVictim
		}
		s.lines[victimLine].clear()
		candidate = victimLine
	}

	line := s.lines[candidate]
	line.setTag(tag)
	if err := line.setSlot(offset, value); err != nil {
		// an empty line must not keep a tag
		line.clear()
		return err
	}
	s.policy.RecordAccess(tag, candidate)

	return nil
}

// get returns the value stored under (tag, offset). A tag match records
// an access even when the offset itself was never written; that case is
// a tag hit with an offset miss and reads as absent.
func (s *cacheSet[V]) get(tag uint64, offset uint64) (V, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i, line := range s.lines {
		if line.matchTag(tag) {
			s.policy.RecordAccess(tag, i)
			return line.getSlot(offset)
		}
	}

	var zero V
	return zero, false
}

// getLine looks the line up without touching the policy. Introspection
// only.
func (s *cacheSet[V]) getLine(tag uint64) *cacheLine[V] {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, line := range s.lines {
		if line.matchTag(tag) {
			return line
		}
	}
	return nil
}

func (s *cacheSet[V]) deleteValue(tag uint64, offset uint64, value V) DeleteStatus {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, line := range s.lines {
		if line.matchTag(tag) {
			matched, nowEmpty, _ := line.deleteSlot(offset, value)
			if !matched {
				return DeleteNoMatch
			}
			s.policy.OnDelete(tag, nowEmpty)
			return Deleted
		}
	}

	return DeleteNotFound
}
