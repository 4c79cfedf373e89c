package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/lae/internal/clock"
	"github.com/viant/lae/internal/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func useFakeClock(t *testing.T) *fakeClock {
	t.Helper()
	fake := &fakeClock{now: time.Unix(1700000000, 0)}
	previous := clock.NowFunc
	clock.NowFunc = fake.Now
	t.Cleanup(func() { clock.NowFunc = previous })
	return fake
}

func newService(t *testing.T, workers int, options ...Option) *Service {
	t.Helper()
	options = append([]Option{WithLogger(logger.Discard())}, options...)
	srv, err := New(workers, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown() })
	return srv
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		description string
		workers     int
		options     []Option
		expect      error
	}{
		{description: "zero workers", workers: 0, expect: ErrInvalidWorkers},
		{description: "factor count mismatch", workers: 2, options: []Option{WithFatigueFactors(1)}, expect: ErrInvalidFatigueFactors},
		{description: "non positive factor", workers: 2, options: []Option{WithFatigueFactors(1, 0)}, expect: ErrInvalidFatigueFactors},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := New(tc.workers, tc.options...)
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestNew_RandomFactorsInRange(t *testing.T) {
	srv := newService(t, 16)
	for _, w := range srv.Report().Workers {
		assert.GreaterOrEqual(t, w.Factor, 0.5)
		assert.Less(t, w.Factor, 1.5)
	}
}

func TestService_SubmitAll_RunsEveryTaskOnce(t *testing.T) {
	srv := newService(t, 4)
	const count = 500
	var runs [count]atomic.Int32
	tasks := make([]Task, count)
	for i := range tasks {
		tasks[i] = func() error {
			runs[i].Add(1)
			return nil
		}
	}

	require.NoError(t, srv.SubmitAll(context.Background(), tasks))
	for i := range runs {
		assert.EqualValues(t, 1, runs[i].Load(), "task %d", i)
	}
	assert.Equal(t, 0, srv.InFlight())
	assert.Equal(t, Stats{Workers: 4, Idle: 4, Busy: 0, InFlight: 0}, srv.Stats())
}

func TestService_SubmitAll_Empty(t *testing.T) {
	srv := newService(t, 1)
	assert.NoError(t, srv.SubmitAll(context.Background(), nil))
	assert.NoError(t, srv.SubmitAll(context.Background(), []Task{}))
}

func TestService_SubmitAll_JoinsTaskErrors(t *testing.T) {
	srv := newService(t, 2)
	first := errors.New("first")
	second := errors.New("second")
	err := srv.SubmitAll(context.Background(), []Task{
		func() error { return first },
		func() error { return nil },
		func() error { return second },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Equal(t, 0, srv.InFlight())
}

func TestService_PanicDoesNotLoseWorker(t *testing.T) {
	srv := newService(t, 2)
	err := srv.SubmitAll(context.Background(), []Task{
		func() error { panic("boom") },
		func() error { return nil },
	})
	require.ErrorIs(t, err, ErrTaskPanic)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, Stats{Workers: 2, Idle: 2, Busy: 0, InFlight: 0}, srv.Stats())

	var ran atomic.Int32
	tasks := []Task{
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return nil },
	}
	require.NoError(t, srv.SubmitAll(context.Background(), tasks))
	assert.EqualValues(t, 3, ran.Load())
}

func TestService_SubmitNilTask(t *testing.T) {
	srv := newService(t, 1)
	assert.ErrorIs(t, srv.Submit(context.Background(), nil), ErrNilTask)
	assert.Equal(t, 0, srv.InFlight())
}

func TestService_Submit_FireAndForget(t *testing.T) {
	srv := newService(t, 2)
	done := make(chan struct{})
	require.NoError(t, srv.Submit(context.Background(), func() error {
		close(done)
		return errors.New("logged only")
	}))
	<-done
	srv.Wait()
	assert.Equal(t, 0, srv.InFlight())
}

func TestService_LeastFatiguedDispatch(t *testing.T) {
	fake := useFakeClock(t)
	srv := newService(t, 2, WithFatigueFactors(1, 2))
	step := func() Task {
		return func() error {
			fake.Advance(10 * time.Millisecond)
			return nil
		}
	}
	used := func() []float64 {
		report := srv.Report()
		return []float64{report.Workers[0].TimeUsed, report.Workers[1].TimeUsed}
	}

	// both at zero fatigue, the lower id wins
	require.NoError(t, srv.SubmitAll(context.Background(), []Task{step()}))
	assert.InDeltaSlice(t, []float64{0.01, 0}, used(), 1e-9)

	require.NoError(t, srv.SubmitAll(context.Background(), []Task{step()}))
	assert.InDeltaSlice(t, []float64{0.01, 0.01}, used(), 1e-9)

	// fatigue is now 10ms vs 20ms
	require.NoError(t, srv.SubmitAll(context.Background(), []Task{step()}))
	assert.InDeltaSlice(t, []float64{0.02, 0.01}, used(), 1e-9)

	// tie at 20ms, the lower id wins again
	require.NoError(t, srv.SubmitAll(context.Background(), []Task{step()}))
	assert.InDeltaSlice(t, []float64{0.03, 0.01}, used(), 1e-9)
}

func TestService_ReportFairness(t *testing.T) {
	fake := useFakeClock(t)
	srv := newService(t, 2, WithFatigueFactors(1, 3))
	second := func() error {
		fake.Advance(time.Second)
		return nil
	}
	require.NoError(t, srv.SubmitAll(context.Background(), []Task{second}))
	require.NoError(t, srv.SubmitAll(context.Background(), []Task{second}))

	report := srv.Report()
	assert.InDelta(t, 1.0, report.Workers[0].Fatigue, 1e-9)
	assert.InDelta(t, 3.0, report.Workers[1].Fatigue, 1e-9)
	assert.InDelta(t, 2.0, report.Fairness, 1e-9)
}

func TestService_ReportString(t *testing.T) {
	fake := useFakeClock(t)
	srv := newService(t, 2, WithFatigueFactors(1, 1))
	fake.Advance(1500 * time.Millisecond)

	text := srv.Report().String()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Worker Report:", lines[0])
	for i := 0; i < 2; i++ {
		assert.Equal(t, fmt.Sprintf("Worker %d - Current status: Idle, Fatigue: 0.00, Time Used: 0.00 s, Time Idle: 1.50 s", i), lines[i+1])
	}
	assert.Equal(t, "Fairness (sum of squared fatigue deviations): 0.0000", lines[3])
}

func TestService_ContextCancelledWhileWaiting(t *testing.T) {
	srv := newService(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, srv.Submit(context.Background(), func() error {
		<-ctx.Done()
		return nil
	}))
	var ran atomic.Bool
	err := srv.SubmitAll(ctx, []Task{func() error { ran.Store(true); return nil }})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran.Load())
	assert.Equal(t, 0, srv.InFlight())
}

func TestService_Shutdown(t *testing.T) {
	srv, err := New(3, WithLogger(logger.Discard()))
	require.NoError(t, err)

	var ran atomic.Int32
	require.NoError(t, srv.SubmitAll(context.Background(), []Task{
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return nil },
	}))
	require.NoError(t, srv.Shutdown())
	require.NoError(t, srv.Shutdown())

	assert.EqualValues(t, 2, ran.Load())
	assert.ErrorIs(t, srv.Submit(context.Background(), func() error { return nil }), ErrShutdown)
	assert.ErrorIs(t, srv.SubmitAll(context.Background(), []Task{func() error { return nil }}), ErrShutdown)
	for _, w := range srv.Report().Workers {
		assert.Equal(t, StateStopped, w.State)
	}
}

func TestService_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	srv := newService(t, 1, WithRegisterer(registry))
	failure := errors.New("failure")
	err := srv.SubmitAll(context.Background(), []Task{
		func() error { return nil },
		func() error { return nil },
		func() error { return failure },
		func() error { panic("boom") },
	})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(srv.metrics.tasks.WithLabelValues("0", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.tasks.WithLabelValues("0", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.tasks.WithLabelValues("0", "panic")))
	assert.Equal(t, 0.0, testutil.ToFloat64(srv.metrics.inFlight))

	// a second pool on the same registry reuses the collectors
	other := newService(t, 1, WithRegisterer(registry))
	require.NoError(t, other.SubmitAll(context.Background(), []Task{func() error { return nil }}))
	assert.Equal(t, 3.0, testutil.ToFloat64(srv.metrics.tasks.WithLabelValues("0", "ok")))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Busy", StateBusy.String())
	assert.Equal(t, "Stopped", StateStopped.String())
	assert.Equal(t, "Unknown", State(9).String())
}
