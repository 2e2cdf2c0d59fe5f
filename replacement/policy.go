package replacement

// Kind selects one of the built-in recency policies.
type Kind int

const (
	LRU Kind = iota
	MRU
)

/*
A Policy decides which line of a cache set gets evicted when the set is
full. A set owns exactly one Policy instance and calls it while holding
its own lock, so the set-level operation stays the unit of atomicity.
Implementations still guard their internal state for stand-alone use.

The policy tracks at most one entry per occupied line, keyed by the
line's tag.
*/
type Policy interface {
	// RecordAccess registers that the line holding tag was just read or
	// written. Tags never seen before are treated as first insertions.
	// Repeated calls with the same tag only reorder the entry.
	RecordAccess(tag uint64, lineIndex int)

	// SelectVictim removes and returns the least desirable tracked entry
	// in policy order. ok is false when nothing is tracked.
	SelectVictim() (tag uint64, lineIndex int, ok bool)

	// Size returns the number of tracked entries.
	Size() int

	// OnDelete is called after a value delete on the line holding tag.
	// A delete that leaves the line occupied counts as an access; one
	// that emptied the line removes the tag from tracking entirely.
	OnDelete(tag uint64, lineEmptied bool)
}
