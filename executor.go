package smartpoll

import "context"

// Executor wraps a sample invocation, e.g. to run it on a managed
// goroutine/thread pool, or to attach request-scoped setup/teardown. If a
// Coordinator is not configured with one, the sample function is called
// directly.
type Executor interface {
	// Wrap invokes fn, applying whatever executor-specific bookkeeping is
	// required, and returns its result unmodified.
	Wrap(ctx context.Context, fn func(ctx context.Context) (bool, error)) (bool, error)

	// ErrorReporter returns the executor's error-reporting capability, or
	// nil if it doesn't have one. A nil return is treated as a no-op by the
	// Coordinator.
	ErrorReporter() ErrorReporter
}

// ErrorReporter surfaces background failures (scheduled-sample errors, hook
// panics) to an out-of-band error tracking system. handled is always false
// for errors originating from this package: nothing here recovers from a
// predicate or hook failure in a way that would make it "handled" from the
// error-reporter's perspective.
type ErrorReporter interface {
	Report(err error, handled bool, source string)
}

// ErrorReporterFunc adapts a plain function to an ErrorReporter.
type ErrorReporterFunc func(err error, handled bool, source string)

// Report calls f.
func (f ErrorReporterFunc) Report(err error, handled bool, source string) { f(err, handled, source) }
