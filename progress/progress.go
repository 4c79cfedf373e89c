package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/lae/internal/clock"
)

// Delta is an incremental counter change; fields may be negative.
type Delta struct {
	Steps     int
	Tasks     int
	Completed int
	Failed    int
}

// Progress keeps run counters. It is safe for concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Steps          int
	Tasks          int
	CompletedTasks int
	FailedTasks    int

	sync.Mutex
	onChange func(Progress)
}

// Update applies d and notifies the onChange callback, if any, with a copy
// taken under the lock. The callback runs outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Steps += d.Steps
	p.Tasks += d.Tasks
	p.CompletedTasks += d.Completed
	p.FailedTasks += d.Failed
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// Pending returns tasks neither completed nor failed.
func (p *Progress) Pending() int {
	return p.Tasks - p.CompletedTasks - p.FailedTasks
}

// OnChange replaces the update callback; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:          p.RunID,
		StartedAt:      p.StartedAt,
		Steps:          p.Steps,
		Tasks:          p.Tasks,
		CompletedTasks: p.CompletedTasks,
		FailedTasks:    p.FailedTasks,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
