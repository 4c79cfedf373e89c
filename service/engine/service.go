package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/viant/lae/model"
	"github.com/viant/lae/progress"
	"github.com/viant/lae/service/scheduler"
	"github.com/viant/lae/tracing"
)

// Scheduler runs batches of row tasks.
type Scheduler interface {
	SubmitAll(ctx context.Context, tasks []scheduler.Task) error
	Report() scheduler.Report
}

// Service resolves computation trees. Runs on one Service are serialised
// because they share the scratch matrices.
type Service struct {
	scheduler Scheduler
	logger    logrus.FieldLogger

	mu      sync.Mutex
	scratch *scratch
}

// New creates an engine backed by sched.
func New(sched Scheduler, options ...Option) *Service {
	s := &Service{
		scheduler: sched,
		logger:    logrus.StandardLogger(),
		scratch:   newScratch(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Run resolves root in place and returns it once it is a matrix leaf. n-ary
// additions and multiplications are first rewritten into left-nested binary
// chains.
func (s *Service) Run(ctx context.Context, root *model.Node) (result *model.Node, err error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	ctx, span := tracing.StartSpan(ctx, "engine.Run", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	if issues := root.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTree, errors.Join(issues...))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nest(root, map[*model.Node]bool{})
	steps := 0
	for !root.IsMatrix() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		node := root.FindResolvable()
		if node == nil {
			return nil, ErrNoResolvable
		}
		if err = s.resolve(ctx, s.scratch, node); err != nil {
			return nil, err
		}
		steps++
	}
	rows, cols := root.Dimensions()
	span.WithInt("steps", steps).WithAttributes(map[string]string{"result": tracing.Dimensions(rows, cols)})
	return root, nil
}

// nest applies associative nesting to every node of the tree.
func nest(node *model.Node, visited map[*model.Node]bool) {
	if node == nil || visited[node] {
		return
	}
	visited[node] = true
	node.AssociativeNesting()
	for _, child := range node.Children {
		nest(child, visited)
	}
}

// resolve runs a single step: validate, load scratch, run row tasks, fold back.
func (s *Service) resolve(ctx context.Context, sc *scratch, node *model.Node) (err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.resolve", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"operator": node.Type.Name()})

	if err = validate(node); err != nil {
		s.logger.WithFields(logrus.Fields{
			"operator": node.Type.Name(),
			"operands": operandShapes(node),
		}).Debug("operation rejected")
		return err
	}
	if err = sc.load(node); err != nil {
		return err
	}
	tasks, err := rowTasks(ctx, node.Type, sc)
	if err != nil {
		return err
	}
	progress.UpdateCtx(ctx, progress.Delta{Steps: 1, Tasks: len(tasks)})
	span.WithInt("tasks", len(tasks))

	if err = s.scheduler.SubmitAll(ctx, tasks); err != nil {
		return fmt.Errorf("failed to resolve %s: %w", node.Type.Name(), err)
	}
	node.Resolve(sc.left.ReadRowMajor())

	rows, cols := node.Dimensions()
	s.logger.WithFields(logrus.Fields{
		"operator": node.Type.Name(),
		"tasks":    len(tasks),
		"result":   tracing.Dimensions(rows, cols),
	}).Debug("node resolved")
	return nil
}

func operandShapes(node *model.Node) string {
	shapes := make([]string, len(node.Children))
	for i, child := range node.Children {
		shapes[i] = tracing.Dimensions(child.Dimensions())
	}
	return strings.Join(shapes, ", ")
}

// Report describes the scratch matrices followed by the scheduler report.
func (s *Service) Report() string {
	builder := strings.Builder{}
	lr, lc := dimensions(s.scratch.left)
	rr, rc := dimensions(s.scratch.right)
	builder.WriteString(fmt.Sprintf("Left matrix: %d x %d\n", lr, lc))
	builder.WriteString(fmt.Sprintf("Right matrix: %d x %d\n", rr, rc))
	builder.WriteString(s.scheduler.Report().String())
	return builder.String()
}
