package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Delay waits before a continuation runs.
type Delay interface {
	// Wait blocks for d or until ctx is done, whichever happens first.
	// It returns ctx.Err() when the wait was cut short.
	Wait(ctx context.Context, d time.Duration) error
}

// TimerDelay waits on a real timer.
type TimerDelay struct{}

// Wait blocks for d or until ctx is done.
func (TimerDelay) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay returns immediately. Used by tests.
type NoDelay struct{}

// Wait only reports an already cancelled context.
func (NoDelay) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Runner executes delayed continuations. Concurrent calls sharing a key run
// the continuation once and all receive its result. The shared wait is only
// abandoned once every caller waiting on it has gone.
type Runner struct {
	delay  Delay
	group  singleflight.Group
	logger zerolog.Logger

	mu      sync.Mutex
	flights map[string]*flight
}

// flight tracks the callers waiting on one execution of a key.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewRunner creates a runner. A nil delay means TimerDelay.
func NewRunner(delay Delay, logger zerolog.Logger) *Runner {
	if delay == nil {
		delay = TimerDelay{}
	}
	return &Runner{
		delay:   delay,
		logger:  logger.With().Str("component", "task-runner").Logger(),
		flights: make(map[string]*flight),
	}
}

// Run waits for d and then invokes fn. A caller whose ctx ends first gets
// the cancellation error back; fn is skipped only when every caller sharing
// the key has cancelled. shared is true when the result came from a
// concurrent call with the same key.
func Run[T any](ctx context.Context, r *Runner, key string, d time.Duration, fn func() (T, error)) (result T, shared bool, err error) {
	if err := ctx.Err(); err != nil {
		return result, false, fmt.Errorf("task %s cancelled: %w", key, err)
	}

	for {
		f := r.join(ctx, key)
		ch := r.group.DoChan(key, func() (interface{}, error) {
			defer r.finish(key, f)
			r.logger.Debug().Str("key", key).Dur("delay", d).Msg("task scheduled")

			if err := r.delay.Wait(f.ctx, d); err != nil {
				r.logger.Info().Str("key", key).Err(err).Msg("task cancelled before running")
				return nil, fmt.Errorf("task %s cancelled: %w", key, err)
			}

			out, err := fn()
			if err != nil {
				return nil, err
			}
			return out, nil
		})

		select {
		case res := <-ch:
			r.leave(key, f)
			if res.Err != nil {
				// Joined a flight abandoned by its own callers; start over.
				if errors.Is(res.Err, context.Canceled) && ctx.Err() == nil {
					continue
				}
				return result, res.Shared, res.Err
			}
			if res.Shared {
				r.logger.Debug().Str("key", key).Msg("duplicate trigger joined running task")
			}
			return res.Val.(T), res.Shared, nil
		case <-ctx.Done():
			r.leave(key, f)
			return result, false, fmt.Errorf("task %s cancelled: %w", key, ctx.Err())
		}
	}
}

// join registers a waiter on the current flight for key, starting a new one
// if none is pending. The flight context outlives any single caller.
func (r *Runner) join(ctx context.Context, key string) *flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		r.flights[key] = f
	}
	f.waiters++
	return f
}

// leave drops a waiter. The last one out cancels a wait still in progress.
func (r *Runner) leave(key string, f *flight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if r.flights[key] == f {
		delete(r.flights, key)
	}
}

// finish detaches a completed flight so later calls start afresh.
func (r *Runner) finish(key string, f *flight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.flights[key] == f {
		delete(r.flights, key)
	}
}
