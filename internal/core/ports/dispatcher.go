package ports

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
)

// Dispatcher applies node graph mutations. It is the single writer of the
// node store, the type ownership mapping and the touched set.
//
//go:generate mockgen -source=dispatcher.go -destination=mocks/mock_dispatcher.go -package=mocks
type Dispatcher interface {
	// CreateNode creates or replaces a node on behalf of plugin.
	CreateNode(ctx context.Context, node *domain.Node, plugin *domain.Plugin) error

	// DeleteNode removes a node. A nil plugin acts as the system and bypasses ownership.
	DeleteNode(ctx context.Context, node *domain.Node, plugin *domain.Plugin) error

	// TouchNode marks a node as still produced by plugin.
	TouchNode(ctx context.Context, node *domain.Node, plugin *domain.Plugin) error

	// APIFinished records that a lifecycle hook finished across all plugins.
	APIFinished(ctx context.Context, api string)
}
