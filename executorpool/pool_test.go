package executorpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolLimitsConcurrency(t *testing.T) {
	const maxConcurrency = 2
	p := New(maxConcurrency, nil)

	var current, maxSeen int64
	const n = 8
	done := make(chan struct{}, n)

	for range n {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = p.Wrap(context.Background(), func(ctx context.Context) (bool, error) {
				c := atomic.AddInt64(&current, 1)
				for {
					seen := atomic.LoadInt64(&maxSeen)
					if c <= seen || atomic.CompareAndSwapInt64(&maxSeen, seen, c) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt64(&current, -1)
				return true, nil
			})
		}()
	}

	for range n {
		<-done
	}

	require.LessOrEqual(t, atomic.LoadInt64(&maxSeen), int64(maxConcurrency))
}

func TestPoolPropagatesResult(t *testing.T) {
	p := New(1, nil)

	active, err := p.Wrap(context.Background(), func(ctx context.Context) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
	require.True(t, active)

	wantErr := errors.New("boom")
	_, err = p.Wrap(context.Background(), func(ctx context.Context) (bool, error) {
		return false, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestPoolRespectsContextCancellation(t *testing.T) {
	p := New(1, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_, _ = p.Wrap(context.Background(), func(ctx context.Context) (bool, error) {
			close(started)
			<-release
			return true, nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Wrap(ctx, func(ctx context.Context) (bool, error) {
		t.Fatal("fn should not run: pool was saturated")
		return false, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestNewPanicsOnNonPositiveConcurrency(t *testing.T) {
	require.Panics(t, func() { New(0, nil) })
	require.Panics(t, func() { New(-1, nil) })
}

func TestPoolErrorReporter(t *testing.T) {
	var reported int
	reporter := reporterFunc(func(err error, handled bool, source string) { reported++ })

	p := New(1, reporter)
	require.NotNil(t, p.ErrorReporter())
	p.ErrorReporter().Report(errors.New("x"), false, "test")
	require.Equal(t, 1, reported)

	empty := New(1, nil)
	require.Nil(t, empty.ErrorReporter())
}

type reporterFunc func(err error, handled bool, source string)

func (f reporterFunc) Report(err error, handled bool, source string) { f(err, handled, source) }
