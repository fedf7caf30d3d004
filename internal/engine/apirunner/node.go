package apirunner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/plugins" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/storage" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/dispatch"
)

// NodeID is the unique identifier for the API runner Graft node.
const NodeID graft.ID = "engine.api_runner"

func init() {
	graft.Register(graft.Node[ports.APIRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			plugins.NodeID,
			dispatch.NodeID,
			storage.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.APIRunner, error) {
			registry, err := graft.Dep[ports.PluginRegistry](ctx)
			if err != nil {
				return nil, err
			}

			dispatcher, err := graft.Dep[*dispatch.Dispatcher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.NodeStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(registry, dispatcher, store, log), nil
		},
	})
}
