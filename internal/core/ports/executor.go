// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// Executor defines the interface for performing a single plan action.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute performs the action. Paths in file operations are already
	// rooted at the target; root is passed for operations that need it as a
	// working directory.
	//
	// Command output is written to stdout and stderr. Commands see root in
	// the HSCRIPT_TARGET environment variable.
	Execute(ctx context.Context, action *domain.Action, root string, stdout, stderr io.Writer) error
}
