package smartpoll

import (
	"context"
	"sync"
	"time"
)

// scheduler is a lazy, single-instance periodic timer, the same shape as
// microbatch.Batcher's background goroutine: a cancelable context plus a
// done channel the stopper waits on, so Shutdown (here, stop) only returns
// once the loop has actually exited.
type scheduler struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func startScheduler(interval time.Duration, tick func(ctx context.Context)) *scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &scheduler{cancel: cancel, done: make(chan struct{})}
	go s.run(ctx, interval, tick)
	return s
}

func (s *scheduler) run(ctx context.Context, interval time.Duration, tick func(ctx context.Context)) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}

// stop cancels future ticks and blocks until any in-flight tick's goroutine
// has exited. An in-flight sample invoked from that tick is allowed to
// complete; only the scheduler's own loop is torn down promptly.
func (s *scheduler) stop() {
	s.cancel()
	<-s.done
}

// schedulerHandle guards lazy construction/teardown of a *scheduler, and is
// the piece that gets cleared on fork (see Coordinator.AfterFork).
type schedulerHandle struct {
	mu  sync.Mutex
	sch *scheduler
}

// ensure lazily constructs the scheduler if absent, and if disabled is
// false. Safe to call repeatedly (idempotent).
func (h *schedulerHandle) ensure(disabled bool, interval time.Duration, tick func(ctx context.Context)) {
	if disabled {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sch != nil {
		return
	}
	h.sch = startScheduler(interval, tick)
}

// stop shuts down the scheduler if present. Idempotent.
func (h *schedulerHandle) stop() {
	h.mu.Lock()
	sch := h.sch
	h.sch = nil
	h.mu.Unlock()
	if sch != nil {
		sch.stop()
	}
}

// reset drops the handle without shutting down the old scheduler goroutine,
// for use exactly once: immediately after a process fork, where the old
// goroutine does not exist in the child's address space to begin with. See
// Coordinator.AfterFork.
func (h *schedulerHandle) reset() {
	h.mu.Lock()
	h.sch = nil
	h.mu.Unlock()
}

// running reports whether a scheduler is currently active, for tests.
func (h *schedulerHandle) running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sch != nil
}
