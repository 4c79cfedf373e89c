package scheduler

import "errors"

var (
	// ErrWorkerOccupied is returned when the selected worker's handoff slot is
	// already taken.
	ErrWorkerOccupied = errors.New("scheduler: worker occupied")
	// ErrShutdown is returned by submissions made after Shutdown.
	ErrShutdown = errors.New("scheduler: shut down")
	// ErrTaskPanic wraps a panic raised by a task.
	ErrTaskPanic = errors.New("scheduler: task panicked")
	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("scheduler: nil task")
	// ErrInvalidWorkers is returned for a non-positive worker count.
	ErrInvalidWorkers = errors.New("scheduler: worker count must be positive")
	// ErrInvalidFatigueFactors is returned when explicit factors do not match
	// the pool.
	ErrInvalidFatigueFactors = errors.New("scheduler: invalid fatigue factors")
)
