package cache

/*
addresser splits a hashed key into its three address fields:

	| tag (remaining high bits) | set (setBits) | offset (offsetBits) |

The masks are fixed at construction. Decomposition is a pure function of
configuration and hash value, so it takes no lock.
*/
type addresser struct {
	offsetBits uint
	setBits    uint
	offsetMask uint64
	setMask    uint64
}

func newAddresser(offsetBits, setBits int) addresser {
	return addresser{
		offsetBits: uint(offsetBits),
		setBits:    uint(setBits),
		offsetMask: (uint64(1) << uint(offsetBits)) - 1,
		setMask:    (uint64(1) << uint(setBits)) - 1,
	}
}

func (a addresser) offsetIndex(h uint64) uint64 {
	return h & a.offsetMask
}

func (a addresser) setNumber(h uint64) uint64 {
	return (h >> a.offsetBits) & a.setMask
}

func (a addresser) tag(h uint64) uint64 {
	return h >> (a.offsetBits + a.setBits)
}
