package ports

import (
	"context"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// Runner performs a plan against the target system.
type Runner interface {
	// Run performs every action in order and stops at the first failure.
	Run(ctx context.Context, plan *domain.Plan, targetRoot string) error
}
