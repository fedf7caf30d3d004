package sourcing

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/ingest"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/plugins"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/storage"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/apirunner"
	"go.trai.ch/grove/internal/engine/dispatch"
	"go.trai.ch/grove/internal/engine/ownership"
)

// NodeID is the unique identifier for the sourcing coordinator Graft node.
const NodeID graft.ID = "engine.sourcing"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			apirunner.NodeID,
			dispatch.NodeID,
			storage.NodeID,
			plugins.NodeID,
			ingest.NodeID,
			ownership.StateNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Coordinator, error) {
			runner, err := graft.Dep[ports.APIRunner](ctx)
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

			registry, err := graft.Dep[ports.PluginRegistry](ctx)
			if err != nil {
				return nil, err
			}

			source, err := graft.Dep[ports.IngestionSource](ctx)
			if err != nil {
				return nil, err
			}

			state, err := graft.Dep[*domain.State](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return NewCoordinator(runner, dispatcher, store, registry, source, state, tracer, log, Options{
				ToggleEnv: cfg.Ingestion.ToggleEnv,
				AlwaysRun: cfg.Ingestion.AlwaysRun,
			}), nil
		},
	})
}
