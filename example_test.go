package smartpoll_test

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-smartpoll"
	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/stumpy"
	"github.com/rs/zerolog"
)

// ExampleCoordinator demonstrates the common case: an always-on background
// poll of an externally supplied predicate, with the stumpy logging backend
// (a zero-ceremony, dependency-free logiface implementation).
func ExampleCoordinator() {
	predicate := smartpoll.PredicateFunc(func(ctx context.Context) (bool, error) {
		return true, nil
	})

	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithTimeField(``)),
	)

	c := smartpoll.New(predicate, smartpoll.Config[*stumpy.Event]{
		PollingInterval: time.Hour,
		Logger:          logger,
	})
	defer c.StopMonitoring()

	active, err := c.ActiveZone(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("active:", active)

	// Output:
	// active: true
}

// ExampleCoordinator_izerolog demonstrates swapping in a different logiface
// backend (izerolog, wrapping github.com/rs/zerolog) without touching any
// Coordinator logic: the backend is purely a type parameter plus a Logger
// value, exactly like logiface-testsuite exercises one behavioral contract
// against multiple backends.
func ExampleCoordinator_izerolog() {
	var calls int64
	predicate := smartpoll.PredicateFunc(func(ctx context.Context) (bool, error) {
		n := atomic.AddInt64(&calls, 1)
		return n > 1, nil // passive on first sample, active thereafter
	})

	logger := izerolog.L.New(izerolog.L.WithZerolog(zerolog.New(io.Discard)))

	c := smartpoll.New(predicate, smartpoll.Config[*izerolog.Event]{
		PollingInterval: 5 * time.Millisecond,
		Logger:          logger,
	})
	defer c.StopMonitoring()

	done := make(chan struct{})
	_ = c.OnActiveZone(context.Background(), func(*smartpoll.Coordinator[*izerolog.Event]) {
		close(done)
	})

	select {
	case <-done:
		fmt.Println("observed transition to active")
	case <-time.After(time.Second):
		fmt.Println("timed out")
	}

	// Output:
	// observed transition to active
}
