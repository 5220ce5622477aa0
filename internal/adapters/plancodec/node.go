package plancodec

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kitsnotes/hollywood/internal/core/ports"
)

// NodeID is the unique identifier for the plan codec Graft node.
const NodeID graft.ID = "adapter.plancodec"

func init() {
	graft.Register(graft.Node[ports.PlanCodec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PlanCodec, error) {
			return New(), nil
		},
	})
}
