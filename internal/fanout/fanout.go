// Package fanout runs independent tasks concurrently and waits for all of
// them to settle, successful or not.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrTimeout is reported for a task that did not finish before its deadline.
var ErrTimeout = errors.New("task timed out")

// Task is one unit of work. It should honor ctx cancellation.
type Task[T any] func(ctx context.Context) (T, error)

// Outcome is the settled result of one task.
type Outcome[T any] struct {
	Value   T
	Err     error
	Elapsed time.Duration
}

// SettleAll runs every task concurrently and returns one outcome per task,
// in task order. Each task gets its own timeout (0 means none). A task that
// panics, fails or overruns its timeout produces an outcome with Err set
// and never affects its siblings. A task that ignores cancellation is
// abandoned; its goroutine finishes in the background.
func SettleAll[T any](ctx context.Context, timeout time.Duration, tasks ...Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))

	// Branches record their own errors and always return nil, so the group
	// never cancels siblings.
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()
			v, err := runOne(ctx, timeout, task)
			outcomes[i] = Outcome[T]{Value: v, Err: err, Elapsed: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

type result[T any] struct {
	value T
	err   error
}

func runOne[T any](ctx context.Context, timeout time.Duration, task Task[T]) (T, error) {
	tctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Buffered so an abandoned task can still deliver and exit.
	done := make(chan result[T], 1)
	go func() {
		var r result[T]
		defer func() {
			if p := recover(); p != nil {
				r = result[T]{err: fmt.Errorf("task panicked: %v", p)}
			}
			done <- r
		}()
		r.value, r.err = task(tctx)
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil {
			r.err = fmt.Errorf("%w: %w", ErrTimeout, r.err)
		}
		return r.value, r.err
	case <-tctx.Done():
		var zero T
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
