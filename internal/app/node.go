package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kitsnotes/hollywood/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/kitsnotes/hollywood/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"github.com/kitsnotes/hollywood/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/kitsnotes/hollywood/internal/adapters/plancodec" //nolint:depguard // Wired in app layer
	"github.com/kitsnotes/hollywood/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"github.com/kitsnotes/hollywood/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ProberNodeID,
			fs.OwnerNodeID,
			plancodec.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	prober, err := graft.Dep[ports.DeviceProber](ctx)
	if err != nil {
		return nil, err
	}

	owners, err := graft.Dep[ports.OwnerLookup](ctx)
	if err != nil {
		return nil, err
	}

	codec, err := graft.Dep[ports.PlanCodec](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, prober, owners, codec, executor, log), nil
}
