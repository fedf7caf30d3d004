package apirunner

import (
	"context"
	"sync"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.NodeActions = (*boundActions)(nil)

// boundActions binds node actions to the plugin whose hook is running.
type boundActions struct {
	runner *Runner
	plugin *domain.Plugin
	group  *errgroup.Group
	ctx    context.Context

	deferred bool
	mu       sync.Mutex
	queue    []func(ctx context.Context) error
}

func newActions(gctx context.Context, r *Runner, plugin *domain.Plugin, g *errgroup.Group, deferred bool) *boundActions {
	return &boundActions{
		runner:   r,
		plugin:   plugin,
		group:    g,
		ctx:      gctx,
		deferred: deferred,
	}
}

func (a *boundActions) CreateNode(ctx context.Context, node *domain.Node) error {
	node = node.Clone()
	return a.apply(ctx, func(ctx context.Context) error {
		return a.runner.dispatcher.CreateNode(ctx, node, a.plugin)
	})
}

func (a *boundActions) DeleteNode(ctx context.Context, node *domain.Node) error {
	return a.apply(ctx, func(ctx context.Context) error {
		return a.runner.dispatcher.DeleteNode(ctx, node, a.plugin)
	})
}

func (a *boundActions) TouchNode(ctx context.Context, node *domain.Node) error {
	return a.apply(ctx, func(ctx context.Context) error {
		return a.runner.dispatcher.TouchNode(ctx, node, a.plugin)
	})
}

func (a *boundActions) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	return a.runner.store.GetNode(ctx, id)
}

func (a *boundActions) GetNodesByType(ctx context.Context, typeName string) ([]*domain.Node, error) {
	var out []*domain.Node
	for node, err := range a.runner.store.IterateNodes(ctx) {
		if err != nil {
			return nil, err
		}
		if node.Type() == typeName {
			out = append(out, node)
		}
	}
	return out, nil
}

func (a *boundActions) Go(fn func(ctx context.Context) error) {
	a.group.Go(func() error {
		return fn(a.ctx)
	})
}

// apply runs op now, or queues it until the hook finishes in deferred mode.
func (a *boundActions) apply(ctx context.Context, op func(ctx context.Context) error) error {
	if !a.deferred {
		return op(ctx)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queue = append(a.queue, op)
	return nil
}

// flush applies queued actions in the order they were issued.
func (a *boundActions) flush(ctx context.Context) error {
	a.mu.Lock()
	queue := a.queue
	a.queue = nil
	a.mu.Unlock()

	for _, op := range queue {
		if err := op(ctx); err != nil {
			return err
		}
	}
	return nil
}
