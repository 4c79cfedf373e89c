package history

import (
	"context"
	"time"
)

// Run states.
const (
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Record describes one evaluation run.
type Record struct {
	ID          string        `json:"id" yaml:"id"`
	State       string        `json:"state" yaml:"state"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	Steps       int           `json:"steps" yaml:"steps"`
	Tasks       int           `json:"tasks" yaml:"tasks"`
	FailedTasks int           `json:"failedTasks" yaml:"failedTasks"`
	Rows        int           `json:"rows" yaml:"rows"`
	Cols        int           `json:"cols" yaml:"cols"`
	StartedAt   time.Time     `json:"startedAt" yaml:"startedAt"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Service stores run records.
type Service interface {
	Save(ctx context.Context, record *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	// List returns records ordered by start time; states, when given, filter
	// the result.
	List(ctx context.Context, states ...string) ([]*Record, error)
}

func matchesState(state string, states []string) bool {
	if len(states) == 0 {
		return true
	}
	for _, candidate := range states {
		if candidate == state {
			return true
		}
	}
	return false
}
