package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/lae/internal/clock"
)

// WorkerReport describes one worker; times are in seconds.
type WorkerReport struct {
	ID       int     `json:"id" yaml:"id"`
	State    State   `json:"state" yaml:"state"`
	Factor   float64 `json:"factor" yaml:"factor"`
	Fatigue  float64 `json:"fatigue" yaml:"fatigue"`
	TimeUsed float64 `json:"timeUsed" yaml:"timeUsed"`
	TimeIdle float64 `json:"timeIdle" yaml:"timeIdle"`
}

// Report is a point-in-time view of the pool.
type Report struct {
	Workers  []WorkerReport `json:"workers" yaml:"workers"`
	Fairness float64        `json:"fairness" yaml:"fairness"`
}

// Report reads every worker's counters without pausing the pool, so values
// of concurrently running workers may be slightly stale. Fairness is the sum
// of squared deviations of fatigue from its mean.
func (s *Service) Report() Report {
	now := clock.Nanos()
	report := Report{Workers: make([]WorkerReport, len(s.workers))}
	mean := 0.0
	for i, w := range s.workers {
		used := time.Duration(w.busyNanos.Load())
		report.Workers[i] = WorkerReport{
			ID:       w.id,
			State:    State(w.state.Load()),
			Factor:   w.factor,
			Fatigue:  w.factor * used.Seconds(),
			TimeUsed: used.Seconds(),
			TimeIdle: w.idleDuration(now).Seconds(),
		}
		mean += report.Workers[i].Fatigue
	}
	if len(s.workers) == 0 {
		return report
	}
	mean /= float64(len(s.workers))
	for _, w := range report.Workers {
		deviation := w.Fatigue - mean
		report.Fairness += deviation * deviation
	}
	return report
}

func (r Report) String() string {
	builder := strings.Builder{}
	builder.WriteString("Worker Report:\n")
	for _, w := range r.Workers {
		builder.WriteString(fmt.Sprintf("Worker %d - Current status: %s, Fatigue: %.2f, Time Used: %.2f s, Time Idle: %.2f s\n",
			w.ID, w.State, w.Fatigue, w.TimeUsed, w.TimeIdle))
	}
	builder.WriteString(fmt.Sprintf("Fairness (sum of squared fatigue deviations): %.4f\n", r.Fairness))
	return builder.String()
}
