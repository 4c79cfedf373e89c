package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/viant/lae/internal/clock"
)

// envelope is what travels through a worker's handoff slot.
type envelope struct {
	task Task
	done func(workerID int, err error)
	stop bool
}

type worker struct {
	id        int
	factor    float64
	handoff   chan envelope
	service   *Service
	state     atomic.Int32
	busyNanos atomic.Int64
	idleNanos atomic.Int64
	idleSince atomic.Int64
}

func newWorker(id int, factor float64, service *Service) *worker {
	w := &worker{
		id:      id,
		factor:  factor,
		handoff: make(chan envelope, 1),
		service: service,
	}
	w.idleSince.Store(clock.Nanos())
	return w
}

// fatigue returns factor × cumulative busy nanoseconds.
func (w *worker) fatigue() float64 {
	return w.factor * float64(w.busyNanos.Load())
}

func (w *worker) run() error {
	for {
		env := <-w.handoff
		if env.stop {
			w.state.Store(int32(StateStopped))
			return nil
		}
		w.execute(env)
	}
}

func (w *worker) execute(env envelope) {
	s := w.service
	started := clock.Now()
	w.idleNanos.Add(started.UnixNano() - w.idleSince.Load())
	w.state.Store(int32(StateBusy))
	s.busy.Add(1)

	err := call(env.task)

	elapsed := clock.Since(started)
	w.busyNanos.Add(int64(elapsed))
	w.idleSince.Store(clock.Nanos())
	w.state.Store(int32(StateIdle))
	s.busy.Add(-1)
	s.metrics.observe(w, elapsed, err)

	if env.done != nil {
		env.done(w.id, err)
	}
	s.release(w)
}

// call runs task converting a panic into ErrTaskPanic.
func call(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	return task()
}

// idleDuration returns cumulative idle time including the current idle stretch.
func (w *worker) idleDuration(now int64) time.Duration {
	idle := w.idleNanos.Load()
	if State(w.state.Load()) != StateBusy {
		if since := w.idleSince.Load(); since > 0 && now > since {
			idle += now - since
		}
	}
	return time.Duration(idle)
}
