package ports

import (
	"io"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// PlanCodec encodes and decodes plans in structured formats.
//
//go:generate mockgen -source=plan_codec.go -destination=mocks/mock_plan_codec.go -package=mocks
type PlanCodec interface {
	Encode(w io.Writer, plan *domain.Plan, format domain.PlanFormat) error
	Decode(r io.Reader, format domain.PlanFormat) (*domain.Plan, error)
}
