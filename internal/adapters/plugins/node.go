package plugins

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/config"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the plugin registry Graft node.
const NodeID graft.ID = "adapter.plugins"

func init() {
	graft.Register(graft.Node[ports.PluginRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.PluginRegistry, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(cfg, Builtins)
		},
	})
}
