package smartpoll

import (
	"fmt"
	"sync"

	"github.com/joeycumines/logiface"
)

// Hook is a caller-registered observer, invoked with the Coordinator
// instance on transitions matching its registered polarity.
type Hook[E logiface.Event] func(c *Coordinator[E])

// hookSet holds the active/passive hook lists. Append-only during normal
// operation; only clear empties it. Guarded by its own mutex, independent of
// the Coordinator's ShareLock, since registration must never block on (or
// be blocked by) an in-flight sample.
type hookSet[E logiface.Event] struct {
	mu      sync.Mutex
	active  []Hook[E]
	passive []Hook[E]
}

func (h *hookSet[E]) append(active bool, hook Hook[E]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if active {
		h.active = append(h.active, hook)
	} else {
		h.passive = append(h.passive, hook)
	}
}

func (h *hookSet[E]) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = nil
	h.passive = nil
}

// snapshot returns a shallow copy of the requested list, taken under the
// mutex, so concurrent appends during dispatch can't disturb iteration
// order or race with the slice header.
func (h *hookSet[E]) snapshot(active bool) []Hook[E] {
	h.mu.Lock()
	defer h.mu.Unlock()
	var src []Hook[E]
	if active {
		src = h.active
	} else {
		src = h.passive
	}
	out := make([]Hook[E], len(src))
	copy(out, src)
	return out
}

// dispatch invokes every hook in hooks, in order, isolating panics so one
// misbehaving observer never prevents the rest from running.
func (c *Coordinator[E]) dispatch(hooks []Hook[E]) {
	for _, hook := range hooks {
		c.invokeHook(hook)
	}
}

func (c *Coordinator[E]) invokeHook(hook Hook[E]) {
	defer func() {
		if r := recover(); r != nil {
			c.reportError(fmt.Errorf("%s: hook panic: %v", c.label, r), "hook")
		}
	}()
	hook(c)
}
