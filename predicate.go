package smartpoll

import "context"

// Predicate decides whether the current deployment zone is active. It is the
// core's sole strategy dependency: how activeness is actually determined
// (database probe, file lookup, DNS trick) is deliberately out of scope of
// this package. See the predicatedns subpackage for a minimal example
// implementation.
type Predicate interface {
	// FetchActiveZone reports whether this zone is currently active. It may
	// take arbitrary time and is never invoked concurrently with itself by
	// a single Coordinator.
	FetchActiveZone(ctx context.Context) (bool, error)
}

// PredicateFunc adapts a plain function to a Predicate, the same way
// microbatch.BatchProcessor adapts a function to the Batcher's processing
// strategy.
type PredicateFunc func(ctx context.Context) (bool, error)

// FetchActiveZone calls f.
func (f PredicateFunc) FetchActiveZone(ctx context.Context) (bool, error) { return f(ctx) }

type alwaysActivePredicate struct{}

func (alwaysActivePredicate) FetchActiveZone(context.Context) (bool, error) { return true, nil }
