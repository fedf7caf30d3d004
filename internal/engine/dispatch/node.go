package dispatch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/adapters/storage" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/ownership"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			storage.NodeID,
			ownership.StateNodeID,
			ownership.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			store, err := graft.Dep[ports.NodeStore](ctx)
			if err != nil {
				return nil, err
			}

			state, err := graft.Dep[*domain.State](ctx)
			if err != nil {
				return nil, err
			}

			tracker, err := graft.Dep[*ownership.Tracker](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			d := NewDispatcher(store, state, tracker, log)
			if err := d.Restore(ctx); err != nil {
				return nil, err
			}
			return d, nil
		},
	})
}
