package ports

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
)

//go:generate mockgen -source=api_runner.go -destination=mocks/mock_api_runner.go -package=mocks

// APIRunner invokes a lifecycle hook across plugins.
type APIRunner interface {
	// Run invokes api on every plugin that implements it, or only on
	// opts.PluginName when set. It returns once every hook and all cascading
	// work they spawned has finished.
	Run(ctx context.Context, api string, opts domain.HookOptions) error
}

// NodeActions is the set of node operations handed to a plugin hook.
type NodeActions interface {
	CreateNode(ctx context.Context, node *domain.Node) error
	DeleteNode(ctx context.Context, node *domain.Node) error
	TouchNode(ctx context.Context, node *domain.Node) error
	GetNode(ctx context.Context, id string) (*domain.Node, error)
	GetNodesByType(ctx context.Context, typeName string) ([]*domain.Node, error)

	// Go runs fn as cascading work of the current hook. The hook is not
	// considered finished until fn returns.
	Go(fn func(ctx context.Context) error)
}

// SourceArgs are passed to a plugin's sourceNodes hook.
type SourceArgs struct {
	Actions NodeActions
	Plugin  *domain.Plugin
	Hook    domain.HookOptions
	Logger  Logger
}

// NodeSourcer is implemented by plugins that create nodes.
type NodeSourcer interface {
	SourceNodes(ctx context.Context, args SourceArgs) error
}

// PluginRegistry lists the loaded plugins in load order.
type PluginRegistry interface {
	// Plugins returns every loaded plugin, including the default site plugin.
	Plugins() []*domain.Plugin

	// Sourcer returns the sourceNodes implementation of the named plugin.
	Sourcer(name string) (NodeSourcer, bool)
}
