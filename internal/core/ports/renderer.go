package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output while a plan runs.
// The same event stream drives either a progress recorder or linear logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once before the first action with the action IDs
	// and their display names, in execution order.
	OnPlanEmit(ids []string, names map[string]string)

	// OnActionStart is called when an action begins.
	OnActionStart(id, name string, startTime time.Time)

	// OnActionLog is called when an action emits output.
	// data may contain partial lines.
	OnActionLog(id string, data []byte)

	// OnActionComplete is called when an action finishes. err is nil on success.
	OnActionComplete(id string, endTime time.Time, err error)
}
