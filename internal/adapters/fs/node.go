package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kitsnotes/hollywood/internal/core/ports"
)

const (
	// ProberNodeID is the unique identifier for the device prober Graft node.
	ProberNodeID graft.ID = "adapter.fs.prober"
	// OwnerNodeID is the unique identifier for the owner lookup Graft node.
	OwnerNodeID graft.ID = "adapter.fs.owner"
)

func init() {
	graft.Register(graft.Node[ports.DeviceProber]{
		ID:        ProberNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DeviceProber, error) {
			return NewProber(), nil
		},
	})

	graft.Register(graft.Node[ports.OwnerLookup]{
		ID:        OwnerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OwnerLookup, error) {
			return NewProber(), nil
		},
	})
}
