package engine

import (
	"context"
	"fmt"

	"github.com/viant/lae/model"
	"github.com/viant/lae/progress"
	"github.com/viant/lae/service/scheduler"
)

// rowTasks builds one task per row of the left scratch matrix.
func rowTasks(ctx context.Context, op model.NodeType, sc *scratch) ([]scheduler.Task, error) {
	rows := sc.left.Len()
	tasks := make([]scheduler.Task, 0, rows)
	for i := 0; i < rows; i++ {
		row, err := sc.left.Get(i)
		if err != nil {
			return nil, err
		}
		var task scheduler.Task
		switch op {
		case model.NodeTypeAdd:
			other, err := sc.right.Get(i)
			if err != nil {
				return nil, err
			}
			task = func() error { return row.Add(other) }
		case model.NodeTypeMultiply:
			right := sc.right
			task = func() error { return row.VecMatMul(right) }
		case model.NodeTypeNegate:
			task = func() error {
				row.Negate()
				return nil
			}
		case model.NodeTypeTranspose:
			task = func() error {
				row.Transpose()
				return nil
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
		}
		tasks = append(tasks, tracked(ctx, task))
	}
	return tasks, nil
}

// tracked reports the task outcome to the run's progress tracker.
func tracked(ctx context.Context, task scheduler.Task) scheduler.Task {
	return func() error {
		err := task()
		if err != nil {
			progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
		} else {
			progress.UpdateCtx(ctx, progress.Delta{Completed: 1})
		}
		return err
	}
}
