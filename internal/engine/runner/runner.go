// Package runner performs a plan's actions against the system being installed.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"go.trai.ch/zerr"
)

// ActionStatus represents the status of an action.
type ActionStatus string

const (
	// StatusPending indicates the action has not started.
	StatusPending ActionStatus = "Pending"
	// StatusRunning indicates the action is executing.
	StatusRunning ActionStatus = "Running"
	// StatusCompleted indicates the action finished successfully.
	StatusCompleted ActionStatus = "Completed"
	// StatusFailed indicates the action failed. Nothing after it runs.
	StatusFailed ActionStatus = "Failed"
)

var _ ports.Runner = (*Runner)(nil)

// Runner executes plans one action at a time, in plan order.
type Runner struct {
	executor ports.Executor
	renderer ports.Renderer
	logger   ports.Logger

	status map[string]ActionStatus
}

// New creates a Runner reporting progress to renderer.
func New(executor ports.Executor, renderer ports.Renderer, logger ports.Logger) *Runner {
	return &Runner{
		executor: executor,
		renderer: renderer,
		logger:   logger,
		status:   make(map[string]ActionStatus),
	}
}

// Status returns the status of the action with the given ID after a run.
func (r *Runner) Status(id string) ActionStatus {
	return r.status[id]
}

// Name returns the display name of an action.
func Name(a *domain.Action) string {
	return fmt.Sprintf("%s:%d %s", a.Key, a.Line, a.Op)
}

// Run performs every action of plan and stops at the first failure.
func (r *Runner) Run(ctx context.Context, plan *domain.Plan, targetRoot string) error {
	// 1. Refuse plans whose actions were altered after emission
	if err := plan.Verify(nil); err != nil {
		return zerr.Wrap(err, "refusing to run plan")
	}

	// 2. Announce the plan
	ids := make([]string, 0, plan.Len())
	names := make(map[string]string, plan.Len())
	for i := range plan.Actions {
		a := &plan.Actions[i]
		ids = append(ids, a.ID)
		names[a.ID] = Name(a)
		r.status[a.ID] = StatusPending
	}
	r.renderer.OnPlanEmit(ids, names)
	r.logger.Info(fmt.Sprintf("runner: performing %d actions on %s", plan.Len(), targetRoot))

	// 3. Execute in order
	for i := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runAction(ctx, &plan.Actions[i], targetRoot); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runAction(ctx context.Context, a *domain.Action, targetRoot string) error {
	r.status[a.ID] = StatusRunning
	r.renderer.OnActionStart(a.ID, Name(a), time.Now())

	out := &actionLog{id: a.ID, renderer: r.renderer}
	err := r.executor.Execute(ctx, a, targetRoot, out, out)
	r.renderer.OnActionComplete(a.ID, time.Now(), err)
	if err == nil {
		r.status[a.ID] = StatusCompleted
		return nil
	}

	r.status[a.ID] = StatusFailed
	failed := zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrActionFailed, err), "")
	failed = zerr.With(failed, "action", a.ID)
	failed = zerr.With(failed, "op", a.Op.String())
	return zerr.With(failed, "line", a.Line)
}

// actionLog forwards command output to the renderer.
type actionLog struct {
	id       string
	renderer ports.Renderer
}

func (w *actionLog) Write(p []byte) (int, error) {
	w.renderer.OnActionLog(w.id, append([]byte(nil), p...))
	return len(p), nil
}
