package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"nway-cache/replacement"
)

// Hasher maps a key onto the 64 bit address space that gets split into
// tag, set and offset fields. It must be pure and stable for the whole
// lifetime of the cache; keys that hash differently across calls would
// land in different lines.
type Hasher[K comparable] func(key K) uint64

// DefaultHasher hashes the key's printed form with xxhash. Callers with
// a cheaper encoding for their key type should supply their own.
func DefaultHasher[K comparable]() Hasher[K] {
	return func(key K) uint64 {
		return xxhash.Sum64String(fmt.Sprint(key))
	}
}

type Options[K comparable] struct {
	// CacheSizeSlots is the total number of value slots in the cache.
	// totalSets = CacheSizeSlots / 2^OffsetBits / NWay and must come out
	// as a positive power of two.
	CacheSizeSlots uint64

	// NWay is the number of lines per set.
	NWay int

	// OffsetBits sizes each line at 2^OffsetBits slots.
	OffsetBits int

	// Replacement picks a built-in recency policy. Ignored when Policy
	// is set.
	Replacement replacement.Kind

	// Policy builds a custom replacement policy. Called once per set.
	Policy func() replacement.Policy

	// Hasher hashes keys. nil falls back to DefaultHasher.
	Hasher Hasher[K]

	// LockingDisabled strips all internal locking for single threaded
	// use. The mode applies uniformly to every nested component.
	LockingDisabled bool
}
