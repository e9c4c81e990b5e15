package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoDelayInvokesContinuation(t *testing.T) {
	r := NewRunner(NoDelay{}, zerolog.Nop())

	got, shared, err := Run(context.Background(), r, "k", time.Hour, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.False(t, shared)
}

func TestRun_PropagatesContinuationError(t *testing.T) {
	r := NewRunner(NoDelay{}, zerolog.Nop())
	boom := errors.New("boom")

	_, _, err := Run(context.Background(), r, "k", 0, func() (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRun_CancelledContextSkipsContinuation(t *testing.T) {
	tests := []struct {
		name  string
		delay Delay
	}{
		{name: "no delay", delay: NoDelay{}},
		{name: "timer", delay: TimerDelay{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(tt.delay, zerolog.Nop())
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			called := false
			_, _, err := Run(ctx, r, "k", time.Hour, func() (int, error) {
				called = true
				return 1, nil
			})
			assert.ErrorIs(t, err, context.Canceled)
			assert.False(t, called)
		})
	}
}

func TestTimerDelay_Waits(t *testing.T) {
	start := time.Now()
	require.NoError(t, TimerDelay{}.Wait(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestTimerDelay_DeadlineCutsWaitShort(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := TimerDelay{}.Wait(ctx, time.Hour)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type blockingDelay struct {
	release chan struct{}
}

func (b blockingDelay) Wait(ctx context.Context, _ time.Duration) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestRun_ConcurrentTriggersShareOneExecution(t *testing.T) {
	delay := blockingDelay{release: make(chan struct{})}
	r := NewRunner(delay, zerolog.Nop())

	var calls atomic.Int32
	var wg sync.WaitGroup
	results := make([]int, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := Run(context.Background(), r, "checkout", time.Second, func() (int, error) {
				return int(calls.Add(1)), nil
			})
			if err == nil {
				results[i] = v
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(delay.release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []int{1, 1, 1}, results)
}

func TestRun_DifferentKeysRunIndependently(t *testing.T) {
	r := NewRunner(NoDelay{}, zerolog.Nop())

	var calls atomic.Int32
	for _, key := range []string{"a", "b"} {
		_, _, err := Run(context.Background(), r, key, 0, func() (int32, error) {
			return calls.Add(1), nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func waiters(r *Runner, key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.flights[key]; ok {
		return f.waiters
	}
	return 0
}

func TestRun_CancelledCallerLeavesOthersRunning(t *testing.T) {
	delay := blockingDelay{release: make(chan struct{})}
	r := NewRunner(delay, zerolog.Nop())

	var calls atomic.Int32
	fn := func() (int, error) { return int(calls.Add(1)), nil }

	type outcome struct {
		value int
		err   error
	}
	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	first := make(chan outcome, 1)
	second := make(chan outcome, 1)
	go func() {
		v, _, err := Run(ctxA, r, "checkout", time.Second, fn)
		first <- outcome{v, err}
	}()
	go func() {
		v, _, err := Run(context.Background(), r, "checkout", time.Second, fn)
		second <- outcome{v, err}
	}()

	require.Eventually(t, func() bool { return waiters(r, "checkout") == 2 }, time.Second, 5*time.Millisecond)
	cancelA()
	assert.ErrorIs(t, (<-first).err, context.Canceled)

	close(delay.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 1, got.value)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRun_AllCallersCancelledSkipsContinuation(t *testing.T) {
	delay := blockingDelay{release: make(chan struct{})}
	defer close(delay.release)
	r := NewRunner(delay, zerolog.Nop())

	var calls atomic.Int32
	fn := func() (int, error) { return int(calls.Add(1)), nil }

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, _, err := Run(ctx, r, "checkout", time.Second, fn)
			errs <- err
		}()
	}

	require.Eventually(t, func() bool { return waiters(r, "checkout") == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	for range 2 {
		assert.ErrorIs(t, <-errs, context.Canceled)
	}

	require.Eventually(t, func() bool { return waiters(r, "checkout") == 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
