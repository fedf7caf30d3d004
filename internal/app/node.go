package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/adapters/snapshot"  //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/adapters/storage"   //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/dispatch"
	"go.trai.ch/grove/internal/engine/ownership"
	"go.trai.ch/grove/internal/engine/sourcing"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			sourcing.NodeID,
			dispatch.NodeID,
			storage.NodeID,
			ownership.StateNodeID,
			snapshot.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	coordinator, err := graft.Dep[*sourcing.Coordinator](ctx)
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

	state, err := graft.Dep[*domain.State](ctx)
	if err != nil {
		return nil, err
	}

	snapshots, err := graft.Dep[ports.SnapshotWriter](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, coordinator, dispatcher, store, state, snapshots, w, log, tracer), nil
}
