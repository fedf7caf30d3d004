package ownership

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/core/domain"
)

const (
	// StateNodeID is the unique identifier for the process-wide sourcing state Graft node.
	StateNodeID graft.ID = "engine.state"
	// NodeID is the unique identifier for the ownership tracker Graft node.
	NodeID graft.ID = "engine.ownership"
)

func init() {
	graft.Register(graft.Node[*domain.State]{
		ID:        StateNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*domain.State, error) {
			return domain.NewState(), nil
		},
	})

	graft.Register(graft.Node[*Tracker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{StateNodeID},
		Run: func(ctx context.Context) (*Tracker, error) {
			state, err := graft.Dep[*domain.State](ctx)
			if err != nil {
				return nil, err
			}
			return NewTracker(state.TypeOwners()), nil
		},
	})
}
