package cache

import (
	"fmt"
	"math/bits"

	"github.com/phuslu/log"

	"nway-cache/replacement"
)

/*
Cache is an in-memory N-way set-associative cache. Keys are hashed and
the hash is split into tag, set and offset fields; the set number picks
one of the fixed cache sets, the tag distinguishes keys competing for
that set's lines and the offset addresses a slot within a line. When a
set runs out of lines its replacement policy picks the victim.

Configuration is immutable after construction; the cache never resizes.
*/
type Cache[K comparable, V comparable] interface {
	// Put stores value under key, evicting a line if the addressed set
	// is full.
	Put(key K, value V) error

	// Get returns the value stored under key. A miss, including a tag
	// hit whose offset was never written, reads as absent.
	Get(key K) (V, bool)

	// Delete removes key's value when the stored value equals value.
	Delete(key K, value V) DeleteStatus

	TotalSets() int
	NWay() int
}

// DeleteStatus reports the outcome of a Delete.
type DeleteStatus int

const (
	// Deleted means the value matched and was removed.
	Deleted DeleteStatus = iota
	// DeleteNoMatch means the slot was unoccupied or held a different
	// value; nothing was mutated.
	DeleteNoMatch
	// DeleteNotFound means no line in the addressed set held the tag.
	DeleteNotFound
)

type nWayCache[K comparable, V comparable] struct {
	logger    log.Logger
	addr      addresser
	hasher    Hasher[K]
	sets      []*cacheSet[V]
	totalSets uint64
	nWay      int
}

/*
New validates the configuration and builds the cache. The slot capacity,
way count and offset bits must be positive, the derived set count must
be a positive power of two and the slot capacity must cover
nWay * 2^offsetBits * totalSets. Violations fail with ErrInvalidConfig;
nothing is validated again after construction.
*/
func New[K comparable, V comparable](logger log.Logger, options Options[K]) (Cache[K, V], error) {
	if options.CacheSizeSlots == 0 || options.NWay <= 0 || options.OffsetBits <= 0 {
		return nil, fmt.Errorf("%w: cache_size=%d n_way=%d offset_bits=%d, all must be positive",
			ErrInvalidConfig, options.CacheSizeSlots, options.NWay, options.OffsetBits)
	}
	if options.OffsetBits >= 32 {
		return nil, fmt.Errorf("%w: offset_bits=%d, lines this large are not addressable",
			ErrInvalidConfig, options.OffsetBits)
	}

	offsetSize := uint64(1) << uint(options.OffsetBits)
	totalSets := options.CacheSizeSlots / offsetSize / uint64(options.NWay)

	if totalSets == 0 || bits.OnesCount64(totalSets) != 1 {
		return nil, fmt.Errorf("%w: derived set count %d must be a positive power of two",
			ErrInvalidConfig, totalSets)
	}
	if options.CacheSizeSlots < uint64(options.NWay)*offsetSize*totalSets {
		return nil, fmt.Errorf("%w: cache_size=%d smaller than n_way*offset_size*total_sets=%d",
			ErrInvalidConfig, options.CacheSizeSlots, uint64(options.NWay)*offsetSize*totalSets)
	}

	threadSafe := !options.LockingDisabled

	newPolicy := options.Policy
	if newPolicy == nil {
		if options.Replacement != replacement.LRU && options.Replacement != replacement.MRU {
			return nil, fmt.Errorf("%w: unknown replacement policy %d",
				ErrInvalidConfig, options.Replacement)
		}
		kind := options.Replacement
		newPolicy = func() replacement.Policy {
			return replacement.NewRecency(kind, threadSafe)
		}
	}

	hasher := options.Hasher
	if hasher == nil {
		hasher = DefaultHasher[K]()
	}

	setBits := bits.TrailingZeros64(totalSets)

	sets := make([]*cacheSet[V], totalSets)
	for i := range sets {
		sets[i] = newCacheSet[V](options.NWay, offsetSize, newPolicy(), threadSafe)
	}

	logger.Debug().Msgf("cache created : %d sets x %d ways x %d slots", totalSets, options.NWay, offsetSize)

	return &nWayCache[K, V]{
		logger:    logger,
		addr:      newAddresser(options.OffsetBits, setBits),
		hasher:    hasher,
		sets:      sets,
		totalSets: totalSets,
		nWay:      options.NWay,
	}, nil
}

func (c *nWayCache[K, V]) Put(key K, value V) error {
	h := c.hasher(key)
	tag, set, offset := c.decompose(h)

	c.logger.Debug().Msgf("put : set %d tag %d offset %d", set, tag, offset)
	return c.sets[set].put(tag, offset, value)
}

func (c *nWayCache[K, V]) Get(key K) (V, bool) {
	h := c.hasher(key)
	tag, set, offset := c.decompose(h)

	c.logger.Debug().Msgf("get : set %d tag %d offset %d", set, tag, offset)
	return c.sets[set].get(tag, offset)
}

func (c *nWayCache[K, V]) Delete(key K, value V) DeleteStatus {
	h := c.hasher(key)
	tag, set, offset := c.decompose(h)

	c.logger.Debug().Msgf("delete : set %d tag %d offset %d", set, tag, offset)
	return c.sets[set].deleteValue(tag, offset, value)
}

func (c *nWayCache[K, V]) TotalSets() int {
	return int(c.totalSets)
}

func (c *nWayCache[K, V]) NWay() int {
	return c.nWay
}

func (c *nWayCache[K, V]) decompose(h uint64) (tag uint64, set uint64, offset uint64) {
	return c.addr.tag(h), c.addr.setNumber(h), c.addr.offsetIndex(h)
}
