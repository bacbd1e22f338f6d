package smartpoll

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joeycumines/logiface"
)

// DefaultPollingInterval is used when Config.PollingInterval is zero or
// negative.
const DefaultPollingInterval = 5 * time.Second

// Config configures a Coordinator. All fields are optional.
type Config[E logiface.Event] struct {
	// PollingInterval is the cadence of the periodic sampler. Defaults to
	// DefaultPollingInterval.
	PollingInterval time.Duration

	// Executor, if set, wraps every predicate invocation.
	Executor Executor

	// Logger, if set, receives info lines on transitions and error lines on
	// background failures.
	Logger *logiface.Logger[E]
}

// Coordinator is a process-local replication coordinator. See the package
// doc comment. The zero value is not usable; construct with New or
// NewAlwaysActive.
type Coordinator[E logiface.Event] struct {
	predicate Predicate
	executor  Executor
	logger    *logiface.Logger[E]
	interval  time.Duration
	label     string

	schedulerDisabled bool

	lock  ShareLock
	state stateCell
	hooks hookSet[E]
	sched schedulerHandle
	errs  *errLogLimiter
}

// New constructs a Coordinator that samples predicate on a periodic
// schedule.
func New[E logiface.Event](predicate Predicate, config Config[E]) *Coordinator[E] {
	if predicate == nil {
		panic("smartpoll: nil predicate")
	}
	return newCoordinator(predicate, config, "smartpoll.Coordinator", false)
}

func newCoordinator[E logiface.Event](predicate Predicate, config Config[E], label string, schedulerDisabled bool) *Coordinator[E] {
	interval := config.PollingInterval
	if interval <= 0 {
		interval = DefaultPollingInterval
	}
	return &Coordinator[E]{
		predicate:         predicate,
		executor:          config.Executor,
		logger:            config.Logger,
		interval:          interval,
		label:             label,
		schedulerDisabled: schedulerDisabled,
		errs:              newErrLogLimiter(),
	}
}

// ActiveZone reports whether this zone is currently active, sampling it (and
// starting the periodic scheduler) on first call. Subsequent calls return
// the cached value without re-sampling, except as refreshed by the
// background scheduler. An error from the first (foreground) sample is
// returned to the caller; the cache is left unsampled in that case.
func (c *Coordinator[E]) ActiveZone(ctx context.Context) (bool, error) {
	if err := c.check(ctx, true); err != nil {
		return false, err
	}
	c.sched.ensure(c.schedulerDisabled, c.interval, c.tick)
	active, _ := c.state.load()
	return active, nil
}

// UpdatedAt returns the timestamp of the most recent sample, or ok=false if
// the zone has never been sampled.
func (c *Coordinator[E]) UpdatedAt() (t time.Time, ok bool) {
	return c.state.updatedAt()
}

// StartMonitoring seeds the cache (sampling synchronously, and firing any
// matching transition, exactly like the first ActiveZone call would) and
// starts the periodic scheduler. Idempotent.
func (c *Coordinator[E]) StartMonitoring(ctx context.Context) error {
	if err := c.check(ctx, true); err != nil {
		return err
	}
	c.sched.ensure(c.schedulerDisabled, c.interval, c.tick)
	return nil
}

// StopMonitoring shuts down the periodic scheduler, if running. Idempotent.
// An in-flight sample is allowed to complete.
func (c *Coordinator[E]) StopMonitoring() {
	c.sched.stop()
}

// AfterFork drops the scheduler handle so the next observation in this
// process lazily reconstructs it. Go does not support resuming a running
// multi-goroutine process across a raw fork(2) the way the source
// environment for this design does — this hook exists for prefork-style
// process supervisors that re-exec/restart rather than literally fork a
// live Go process; call it in the child/restarted process immediately
// before resuming request handling. In any other deployment it is simply
// never called, and is inert.
func (c *Coordinator[E]) AfterFork() {
	c.sched.reset()
}

// OnActiveZone registers hook to be invoked on every passive→active
// transition (including the initial unsampled→active transition). It first
// ensures monitoring has started (seeding the cache, which may sample
// synchronously and can therefore fail on first use). If the zone is
// already active at registration time, hook is invoked once, immediately,
// synchronously.
func (c *Coordinator[E]) OnActiveZone(ctx context.Context, hook Hook[E]) error {
	if err := c.StartMonitoring(ctx); err != nil {
		return err
	}
	c.hooks.append(true, hook)
	if active, ok := c.state.load(); ok && active {
		c.invokeHook(hook)
	}
	return nil
}

// OnPassiveZone registers hook to be invoked on every active→passive
// transition (including the initial unsampled→passive transition). See
// OnActiveZone for the late-registration dispatch behavior.
func (c *Coordinator[E]) OnPassiveZone(ctx context.Context, hook Hook[E]) error {
	if err := c.StartMonitoring(ctx); err != nil {
		return err
	}
	c.hooks.append(false, hook)
	if active, ok := c.state.load(); ok && !active {
		c.invokeHook(hook)
	}
	return nil
}

// ClearHooks removes all registered observers. Does not affect the cache or
// the scheduler, and does not cancel any dispatch already in flight.
func (c *Coordinator[E]) ClearHooks() {
	c.hooks.clear()
}

// check is the core state-update routine shared by every foreground
// operation and the periodic scheduler's tick. With skipWhenSet, it's a
// cheap no-op once the cache has been seeded at least once.
//
// On winning the non-blocking exclusive race, it samples, publishes, releases
// the lock, and only then runs transition detection/hook dispatch — so
// goroutines blocked on the loser branch unblock as soon as the sample
// itself completes, not after every hook has also run. On losing the race,
// it takes and immediately releases a shared lease (Sharing with a no-op
// fn): a barrier that blocks until the winner has finished. If that leaves
// the cache still unseeded (the winner's sample failed), this goroutine
// loops back and tries the exclusive acquire again (another loser may win
// it, in which case this one waits on the barrier once more), so that it
// makes or observes a real sample and reports that honest result, rather
// than silently reporting success.
func (c *Coordinator[E]) check(ctx context.Context, skipWhenSet bool) error {
	for {
		if skipWhenSet {
			if _, ok := c.state.load(); ok {
				return nil
			}
		}

		if !c.lock.StartExclusive(true) {
			c.lock.Sharing(func() {})
			if _, ok := c.state.load(); ok {
				return nil
			}
			continue
		}

		newActive, err := c.sample(ctx)
		if err != nil {
			c.lock.StopExclusive()
			return err
		}

		now := time.Now()
		prevActive, hadPrev := c.state.store(newActive, now)
		c.lock.StopExclusive()
		c.detectTransition(hadPrev, prevActive, newActive)
		return nil
	}
}

// sample invokes the predicate, through the executor if configured.
func (c *Coordinator[E]) sample(ctx context.Context) (bool, error) {
	fetch := func(ctx context.Context) (bool, error) {
		return c.predicate.FetchActiveZone(ctx)
	}
	if c.executor != nil {
		return c.executor.Wrap(ctx, fetch)
	}
	return fetch(ctx)
}

// detectTransition compares prev/new and dispatches the matching hook list.
// It logs before dispatching, so a hook that itself logs can't race ahead of
// the transition line in scraped output.
func (c *Coordinator[E]) detectTransition(hadPrev bool, prev, next bool) {
	if hadPrev && prev == next {
		return
	}
	if next {
		c.logInfo("switching to active")
		c.dispatch(c.hooks.snapshot(true))
	} else {
		c.logInfo("switching to passive")
		c.dispatch(c.hooks.snapshot(false))
	}
}

// tick is the scheduler's per-interval action: sample, but never let an
// error escape the scheduler loop.
func (c *Coordinator[E]) tick(ctx context.Context) {
	if err := c.check(ctx, false); err != nil {
		c.reportError(err, "scheduler")
	}
}

// reportError forwards err to the configured ErrorReporter (a no-op if
// there isn't one, or the Executor exposes none) and, rate-limited per
// source, logs it.
func (c *Coordinator[E]) reportError(err error, source string) {
	if c.executor != nil {
		if reporter := c.executor.ErrorReporter(); reporter != nil {
			reporter.Report(err, false, "replication_coordinator."+source)
		}
	}
	if c.logger != nil && c.errs.allow(source) {
		c.logger.Err().Err(err).Log(fmt.Sprintf("could not check %s active zone", c.label))
	}
}

func (c *Coordinator[E]) logInfo(msg string) {
	if c.logger == nil {
		return
	}
	c.logger.Info().Log(fmt.Sprintf("%s: pid %d: %s", c.label, os.Getpid(), msg))
}
