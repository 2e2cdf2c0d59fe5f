package locks

import "sync"

// nopLocker stands in for a mutex when locking is disabled.
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// New returns a real mutex when enabled, a no-op locker otherwise.
// Single threaded callers disable locking at construction time and every
// component of the cache picks up the same mode through this helper.
func New(enabled bool) sync.Locker {
	if enabled {
		return &sync.Mutex{}
	}
	return nopLocker{}
}
