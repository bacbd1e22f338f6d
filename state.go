package smartpoll

import (
	"sync/atomic"
	"time"
)

// sample is the tri-state cache's payload: both fields are always written
// and read together, via a single atomic.Pointer swap, so a reader that
// observes a non-nil sample is guaranteed to see the updatedAt that belongs
// to it. A nil *sample models the "never been sampled" state.
type sample struct {
	active    bool
	updatedAt time.Time
}

// stateCell holds the cached active-zone flag and its sample timestamp.
// Mutation only happens under the owning Coordinator's ShareLock exclusive
// section; reads are always lock-free.
type stateCell struct {
	current atomic.Pointer[sample]
}

// load returns the cached value and whether a sample has ever been taken.
func (c *stateCell) load() (active bool, ok bool) {
	s := c.current.Load()
	if s == nil {
		return false, false
	}
	return s.active, true
}

// updatedAt returns the timestamp of the most recent sample, if any.
func (c *stateCell) updatedAt() (time.Time, bool) {
	s := c.current.Load()
	if s == nil {
		return time.Time{}, false
	}
	return s.updatedAt, true
}

// store publishes a new sample, returning the previous value (and whether
// one existed) for transition detection. Must only be called while holding
// the exclusive section of the owning ShareLock.
func (c *stateCell) store(active bool, at time.Time) (prevActive bool, hadPrev bool) {
	prev := c.current.Swap(&sample{active: active, updatedAt: at})
	if prev == nil {
		return false, false
	}
	return prev.active, true
}
