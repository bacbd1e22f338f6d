package smartpoll

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// errLogLimiter rate-limits background-error *log lines* (never the
// ErrorReporter.Report call itself, which must always fire) during a
// sustained run of failures, so a stuck predicate doesn't flood the log once
// per tick. It's a thin adaptation of go-catrate's category rate limiter,
// keyed by error source.
//
// The zero value is not usable; construct with newErrLogLimiter.
type errLogLimiter struct {
	limiter *catrate.Limiter
}

// newErrLogLimiter permits at most one log line per source within any 250ms
// window and within any 5 second window, so in effect at most one line per
// source every 5 seconds, using the multi-window configuration
// go-catrate.NewLimiter expects.
func newErrLogLimiter() *errLogLimiter {
	return &errLogLimiter{
		limiter: catrate.NewLimiter(map[time.Duration]int{
			250 * time.Millisecond: 1,
			5 * time.Second:        1,
		}),
	}
}

// allow reports whether a log line for category should be emitted now.
func (l *errLogLimiter) allow(category string) bool {
	_, ok := l.limiter.Allow(category)
	return ok
}
