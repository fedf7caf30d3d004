package plugins_test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// memActions applies node actions to a map, stamping the owner like the dispatcher.
type memActions struct {
	owner string

	mu      sync.Mutex
	nodes   map[string]*domain.Node
	deleted []string
	g       errgroup.Group
}

func newMemActions(owner string) *memActions {
	return &memActions{owner: owner, nodes: make(map[string]*domain.Node)}
}

func (a *memActions) CreateNode(_ context.Context, node *domain.Node) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := node.Clone()
	n.Internal.Owner = a.owner
	a.nodes[n.ID] = n
	return nil
}

func (a *memActions) DeleteNode(_ context.Context, node *domain.Node) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.nodes, node.ID)
	a.deleted = append(a.deleted, node.ID)
	return nil
}

func (a *memActions) TouchNode(context.Context, *domain.Node) error { return nil }

func (a *memActions) GetNode(_ context.Context, id string) (*domain.Node, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nodes[id], nil
}

func (a *memActions) GetNodesByType(_ context.Context, typeName string) ([]*domain.Node, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []*domain.Node
	for _, id := range slices.Sorted(maps.Keys(a.nodes)) {
		if a.nodes[id].Type() == typeName {
			out = append(out, a.nodes[id])
		}
	}
	return out, nil
}

func (a *memActions) Go(fn func(ctx context.Context) error) {
	a.g.Go(func() error { return fn(context.Background()) })
}

func (a *memActions) byType(typeName string) []*domain.Node {
	nodes, _ := a.GetNodesByType(context.Background(), typeName)
	return nodes
}

// source runs the named plugin's sourceNodes hook and joins its cascading work.
func source(t *testing.T, registry ports.PluginRegistry, name string, actions *memActions, logger ports.Logger) error {
	t.Helper()
	sourcer, ok := registry.Sourcer(name)
	require.True(t, ok)

	err := sourcer.SourceNodes(context.Background(), ports.SourceArgs{
		Actions: actions,
		Plugin:  domain.PluginNamed(name),
		Logger:  logger,
	})
	if waitErr := actions.g.Wait(); err == nil {
		err = waitErr
	}
	return err
}

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}
