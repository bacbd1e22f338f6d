// Package executorpool provides a concrete smartpoll.Executor that bounds
// the number of concurrent predicate invocations across any number of
// Coordinators sharing one Pool, e.g. when an application runs one
// Coordinator per replicated resource against a common, rate-sensitive
// downstream probe.
//
// The concurrency limiter is a buffered channel used as a counting
// semaphore, the same idiom microbatch.Batcher.run uses (runningBatchCh) to
// cap concurrent BatchProcessor invocations.
package executorpool

import (
	"context"

	"github.com/joeycumines/go-smartpoll"
)

// Pool is a smartpoll.Executor that limits concurrent Wrap calls to a
// fixed maximum. The zero value is not usable; construct with New.
type Pool struct {
	sem      chan struct{}
	reporter smartpoll.ErrorReporter
}

// New constructs a Pool allowing at most maxConcurrency concurrent Wrap
// calls. maxConcurrency must be positive.
//
// errorReporter may be nil, in which case Pool.ErrorReporter returns nil
// (callers' Coordinators then treat error reporting as a no-op, per
// smartpoll's documented behavior for an absent reporter).
func New(maxConcurrency int, errorReporter smartpoll.ErrorReporter) *Pool {
	if maxConcurrency <= 0 {
		panic("executorpool: maxConcurrency must be positive")
	}
	return &Pool{
		sem:      make(chan struct{}, maxConcurrency),
		reporter: errorReporter,
	}
}

// Wrap acquires a slot (blocking on ctx if the pool is saturated), invokes
// fn, and releases the slot.
func (p *Pool) Wrap(ctx context.Context, fn func(ctx context.Context) (bool, error)) (bool, error) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	defer func() { <-p.sem }()
	return fn(ctx)
}

// ErrorReporter returns the configured error reporter, or nil.
func (p *Pool) ErrorReporter() smartpoll.ErrorReporter { return p.reporter }
