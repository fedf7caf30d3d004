package sourcing

import (
	"context"
	"fmt"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// MaxParentHops bounds the parent walk so cyclic parent links terminate.
const MaxParentHops = 100

// RootID returns the id of the topmost existing ancestor of node.
// A dangling parent reference ends the walk at the last existing node.
func RootID(ctx context.Context, store ports.NodeStore, node *domain.Node, logger ports.Logger) (string, error) {
	root := node
	for hops := 0; root.Parent != ""; hops++ {
		parent, err := store.GetNode(ctx, root.Parent)
		if err != nil {
			return "", err
		}
		if parent == nil {
			break
		}
		if hops == MaxParentHops {
			logger.Warn(fmt.Sprintf(
				"node %s has a parent chain longer than %d hops; it looks like a node has set its parent as itself",
				node.ID, MaxParentHops,
			))
			break
		}
		root = parent
	}
	return root.ID, nil
}

// StaleNodes returns every stored node whose root ancestor is not in touched.
func StaleNodes(
	ctx context.Context,
	store ports.NodeStore,
	touched map[string]struct{},
	logger ports.Logger,
) ([]*domain.Node, error) {
	var nodes []*domain.Node
	for node, err := range store.IterateNodes(ctx) {
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	var stale []*domain.Node
	for _, node := range nodes {
		rootID, err := RootID(ctx, store, node, logger)
		if err != nil {
			return nil, err
		}
		if _, ok := touched[rootID]; !ok {
			stale = append(stale, node)
		}
	}
	return stale, nil
}
