package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nway-cache/replacement"
)

func newTestSet(nWay int, offsetSize uint64) *cacheSet[int] {
	return newCacheSet[int](nWay, offsetSize, replacement.NewRecency(replacement.LRU, true), true)
}

func TestCacheSetPutGet(t *testing.T) {
	set := newTestSet(2, 2)

	assert.Nil(t, set.put(24384, 0, 101))
	assert.Nil(t, set.put(24384, 1, 102))
	// same tag and offset replaces in place
	assert.Nil(t, set.put(24384, 0, 103))

	value, ok := set.get(24384, 0)
	assert.True(t, ok)
	assert.Equal(t, 103, value)

	_, ok = set.get(37485, 1)
	assert.False(t, ok)

	assert.Nil(t, set.put(37884, 0, 104))
	// set is full now, this evicts the least recently used tag 24384
	assert.Nil(t, set.put(38984, 0, 105))

	value, ok = set.get(37884, 0)
	assert.True(t, ok)
	assert.Equal(t, 104, value)

	_, ok = set.get(24384, 1)
	assert.False(t, ok)
}

func TestCacheSetTagHitOffsetMiss(t *testing.T) {
	set := newTestSet(2, 4)

	assert.Nil(t, set.put(500, 0, 1))
	_, ok := set.get(500, 3)
	assert.False(t, ok)

	// the tag hit must still count as an access
	assert.Equal(t, 1, set.policy.Size())
}

func TestCacheSetGetLine(t *testing.T) {
	set := newTestSet(2, 2)

	assert.Nil(t, set.put(24384, 0, 101))
	assert.Nil(t, set.put(24384, 1, 102))
	assert.Nil(t, set.put(24384, 0, 103))
	assert.Same(t, set.lines[0], set.getLine(24384))

	assert.Nil(t, set.put(24956, 0, 104))
	assert.Same(t, set.lines[1], set.getLine(24956))

	assert.Nil(t, set.getLine(99999))
}

func TestCacheSetDeleteValue(t *testing.T) {
	set := newTestSet(2, 2)

	assert.Nil(t, set.put(38944, 0, 101))
	assert.Nil(t, set.put(38944, 1, 102))

	t.Run("partial delete keeps the line", func(t *testing.T) {
		assert.Equal(t, Deleted, set.deleteValue(38944, 0, 101))
		assert.Same(t, set.lines[0], set.getLine(38944))
	})

	assert.Nil(t, set.put(34788, 1, 103))

	t.Run("emptying delete frees the line", func(t *testing.T) {
		assert.Equal(t, Deleted, set.deleteValue(38944, 1, 102))
		// the freed line is reused before anything gets evicted
		assert.Nil(t, set.put(44788, 1, 104))
		assert.Nil(t, set.getLine(38944))
		assert.NotNil(t, set.getLine(34788))
		assert.NotNil(t, set.getLine(44788))
	})

	t.Run("mismatched value does not mutate", func(t *testing.T) {
		assert.Equal(t, DeleteNoMatch, set.deleteValue(34788, 1, 999))
		value, ok := set.get(34788, 1)
		assert.True(t, ok)
		assert.Equal(t, 103, value)
	})

	t.Run("unknown tag reports not found", func(t *testing.T) {
		assert.Equal(t, DeleteNotFound, set.deleteValue(77777, 0, 1))
	})
}

func TestCacheSetEmptiedLineLeavesTracking(t *testing.T) {
	set := newTestSet(2, 2)

	assert.Nil(t, set.put(34788, 0, 105))
	assert.Nil(t, set.put(44788, 0, 106))
	assert.Equal(t, Deleted, set.deleteValue(34788, 0, 105))
	assert.Equal(t, 1, set.policy.Size())

	// the freed line is taken before the policy has to pick a victim,
	// so tag 44788 survives the insert
	assert.Nil(t, set.put(10755, 0, 107))
	assert.NotNil(t, set.getLine(44788))
	assert.NotNil(t, set.getLine(10755))
	assert.Nil(t, set.getLine(34788))
}

func TestCacheSetTagUniqueness(t *testing.T) {
	set := newTestSet(4, 2)

	for i := 0; i < 16; i++ {
		assert.Nil(t, set.put(uint64(i%4), uint64(i%2), i))
	}

	seen := map[uint64]int{}
	for _, line := range set.lines {
		if line.hasTag {
			seen[line.tag]++
			assert.NotZero(t, line.count)
		} else {
			assert.Zero(t, line.count)
		}
	}
	for tag, n := range seen {
		assert.Equalf(t, 1, n, "tag %d held by %d lines", tag, n)
	}
}
