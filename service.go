package lae

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/lae/internal/clock"
	"github.com/viant/lae/internal/idgen"
	"github.com/viant/lae/model"
	"github.com/viant/lae/progress"
	"github.com/viant/lae/service/engine"
	"github.com/viant/lae/service/history"
	"github.com/viant/lae/service/output"
	"github.com/viant/lae/service/scheduler"
	"github.com/viant/lae/tracing"
)

// Service wires the scheduler, engine, parser and output writer.
type Service struct {
	config     *Config
	logger     logrus.FieldLogger
	registerer prometheus.Registerer
	fs         afs.Service
	fsOptions  []storage.Option
	listener   func(progress.Progress)
	tracingErr error

	scheduler *scheduler.Service
	engine    *engine.Service
	writer    *output.Writer
	history   history.Service
}

// New creates a service and starts its worker pool.
func New(options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		logger: logrus.StandardLogger(),
		fs:     afs.New(),
	}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if s.tracingErr != nil {
		return nil, fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}

	schedulerOptions := []scheduler.Option{
		scheduler.WithLogger(s.logger),
		scheduler.WithRegisterer(s.registerer),
	}
	if len(s.config.Scheduler.FatigueFactors) > 0 {
		schedulerOptions = append(schedulerOptions, scheduler.WithFatigueFactors(s.config.Scheduler.FatigueFactors...))
	}
	var err error
	if s.scheduler, err = scheduler.New(s.config.Scheduler.Workers, schedulerOptions...); err != nil {
		return nil, err
	}
	s.engine = engine.New(s.scheduler, engine.WithLogger(s.logger))
	s.writer = output.New(s.fs)
	if s.history == nil {
		s.history = history.NewMemory(history.WithLimit(s.config.History.Limit))
	}
	return s, nil
}

// Evaluate resolves root in place. Each call is a run with its own id,
// progress tracker and history record.
func (s *Service) Evaluate(ctx context.Context, root *model.Node) (result *model.Node, err error) {
	runID := idgen.New()
	ctx, span := tracing.StartSpan(ctx, "lae.Evaluate", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"run.id": runID})

	ctx, tracker := progress.WithNewTracker(ctx, runID, s.listener)
	started := clock.Now()
	record := &history.Record{ID: runID, State: history.StateRunning, StartedAt: started}
	s.saveRecord(ctx, record)

	result, err = s.engine.Run(ctx, root)

	snapshot := tracker.Snapshot()
	record.Steps = snapshot.Steps
	record.Tasks = snapshot.Tasks
	record.FailedTasks = snapshot.FailedTasks
	record.Elapsed = clock.Since(started)
	entry := s.logger.WithFields(logrus.Fields{
		"run":     runID,
		"steps":   snapshot.Steps,
		"tasks":   snapshot.Tasks,
		"failed":  snapshot.FailedTasks,
		"elapsed": record.Elapsed.Round(time.Microsecond).String(),
	})
	if err != nil {
		record.State = history.StateFailed
		record.Error = err.Error()
		s.saveRecord(ctx, record)
		entry.WithError(err).Warn("evaluation failed")
		return nil, err
	}
	record.State = history.StateCompleted
	record.Rows, record.Cols = result.Dimensions()
	s.saveRecord(ctx, record)
	entry.Info("evaluation completed")
	return result, nil
}

func (s *Service) saveRecord(ctx context.Context, record *history.Record) {
	if err := s.history.Save(ctx, record); err != nil {
		s.logger.WithField("run", record.ID).WithError(err).Warn("failed to save run record")
	}
}

// Runs lists recorded runs, oldest first, optionally filtered by state.
func (s *Service) Runs(ctx context.Context, states ...string) ([]*history.Record, error) {
	return s.history.List(ctx, states...)
}

// Run returns the record of a single run.
func (s *Service) Run(ctx context.Context, id string) (*history.Record, error) {
	return s.history.Load(ctx, id)
}

// Report returns the engine's scratch dimensions followed by the worker report.
func (s *Service) Report() string {
	return s.engine.Report()
}

// Stats returns the worker pool counters.
func (s *Service) Stats() scheduler.Stats {
	return s.scheduler.Stats()
}

// Shutdown stops the worker pool. It is safe to call more than once.
func (s *Service) Shutdown() error {
	return s.scheduler.Shutdown()
}
