package scheduler

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Task is a unit of work executed by a worker.
type Task func() error

// Stats holds independently maintained pool counters.
type Stats struct {
	Workers  int
	Idle     int
	Busy     int
	InFlight int
}

// Service is a fatigue-weighted pool of persistent workers.
type Service struct {
	workers    []*worker
	factors    []float64
	logger     logrus.FieldLogger
	registerer prometheus.Registerer
	metrics    *metrics

	mu       sync.Mutex
	drained  *sync.Cond
	idle     idleHeap
	inFlight int
	closing  bool
	tokens   chan struct{}
	busy     atomic.Int64

	closed       chan struct{}
	shutdownOnce sync.Once
	shutdownErr  error
	group        errgroup.Group
}

// New starts a pool of workers. Fatigue factors default to uniform random
// values in [0.5, 1.5).
func New(workers int, options ...Option) (*Service, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	s := &Service{
		logger:  logrus.StandardLogger(),
		metrics: newMetrics(),
		tokens:  make(chan struct{}, workers),
		closed:  make(chan struct{}),
	}
	s.drained = sync.NewCond(&s.mu)
	for _, opt := range options {
		opt(s)
	}
	if err := s.initFactors(workers); err != nil {
		return nil, err
	}
	if err := s.metrics.register(s.registerer); err != nil {
		return nil, fmt.Errorf("failed to register scheduler metrics: %w", err)
	}

	s.workers = make([]*worker, workers)
	s.idle = make(idleHeap, 0, workers)
	for i := range s.workers {
		w := newWorker(i, s.factors[i], s)
		s.workers[i] = w
		s.idle = append(s.idle, w)
		s.tokens <- struct{}{}
		s.group.Go(w.run)
	}
	heap.Init(&s.idle)
	return s, nil
}

func (s *Service) initFactors(workers int) error {
	if s.factors == nil {
		s.factors = make([]float64, workers)
		for i := range s.factors {
			s.factors[i] = 0.5 + rand.Float64()
		}
		return nil
	}
	if len(s.factors) != workers {
		return fmt.Errorf("%w: got %d factors for %d workers", ErrInvalidFatigueFactors, len(s.factors), workers)
	}
	for i, factor := range s.factors {
		if factor <= 0 {
			return fmt.Errorf("%w: factor %d is %v", ErrInvalidFatigueFactors, i, factor)
		}
	}
	return nil
}

// Submit hands task to the least-fatigued idle worker, waiting for one to
// become idle. The task runs asynchronously; its failure is logged.
func (s *Service) Submit(ctx context.Context, task Task) error {
	return s.submit(ctx, task, s.logFailure)
}

// SubmitAll submits every task and waits until no task is in flight. Task
// errors of the batch are returned joined. When submission is interrupted by
// ctx, already submitted tasks are still awaited before ctx's error is
// returned.
func (s *Service) SubmitAll(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	var mu sync.Mutex
	var failures []error
	collect := func(workerID int, err error) {
		if err == nil {
			return
		}
		mu.Lock()
		failures = append(failures, fmt.Errorf("worker %d: %w", workerID, err))
		mu.Unlock()
	}

	var submitErr error
	for _, task := range tasks {
		if submitErr = s.submit(ctx, task, collect); submitErr != nil {
			break
		}
	}
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if submitErr != nil {
		return errors.Join(append([]error{submitErr}, failures...)...)
	}
	return errors.Join(failures...)
}

func (s *Service) submit(ctx context.Context, task Task, done func(int, error)) error {
	if task == nil {
		return ErrNilTask
	}
	select {
	case <-s.closed:
		return ErrShutdown
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return ErrShutdown
	case <-s.tokens:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		s.tokens <- struct{}{}
		return ErrShutdown
	}
	w := heap.Pop(&s.idle).(*worker)
	s.inFlight++
	s.metrics.inFlight.Inc()
	select {
	case w.handoff <- envelope{task: task, done: done}:
		return nil
	default:
		s.inFlight--
		s.metrics.inFlight.Dec()
		heap.Push(&s.idle, w)
		s.tokens <- struct{}{}
		if s.inFlight == 0 {
			s.drained.Broadcast()
		}
		return fmt.Errorf("%w: worker %d", ErrWorkerOccupied, w.id)
	}
}

// release re-admits w to the idle heap and retires one in-flight task.
func (s *Service) release(w *worker) {
	s.mu.Lock()
	heap.Push(&s.idle, w)
	s.tokens <- struct{}{}
	s.inFlight--
	s.metrics.inFlight.Dec()
	if s.inFlight == 0 {
		s.drained.Broadcast()
	}
	s.mu.Unlock()
}

// Wait blocks until no task is in flight.
func (s *Service) Wait() {
	s.mu.Lock()
	for s.inFlight > 0 {
		s.drained.Wait()
	}
	s.mu.Unlock()
}

// InFlight returns the number of tasks handed to workers and not yet finished.
func (s *Service) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Workers returns the pool size.
func (s *Service) Workers() int {
	return len(s.workers)
}

// Stats returns the pool counters. When the pool is quiescent
// Idle+Busy == Workers and InFlight == 0.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Workers:  len(s.workers),
		Idle:     len(s.idle),
		Busy:     int(s.busy.Load()),
		InFlight: s.inFlight,
	}
}

// Shutdown stops every worker after the tasks already handed to it and waits
// for them to exit. Subsequent submissions fail with ErrShutdown. It is safe
// to call more than once.
func (s *Service) Shutdown() error {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		s.closing = true
		close(s.closed)
		s.mu.Unlock()
		for _, w := range s.workers {
			w.handoff <- envelope{stop: true}
		}
		s.shutdownErr = s.group.Wait()
	})
	return s.shutdownErr
}

func (s *Service) logFailure(workerID int, err error) {
	if err == nil {
		return
	}
	s.logger.WithFields(logrus.Fields{"worker": workerID}).WithError(err).Error("task failed")
}
