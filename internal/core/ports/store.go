// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"iter"

	"go.trai.ch/grove/internal/core/domain"
)

// NodeStore persists the node graph.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type NodeStore interface {
	// GetNode returns the node with the given id.
	// Returns nil, nil if not found.
	GetNode(ctx context.Context, id string) (*domain.Node, error)

	// IterateNodes yields every stored node.
	// Iteration reflects writes that are not yet committed.
	IterateNodes(ctx context.Context) iter.Seq2[*domain.Node, error]

	// Upsert creates or replaces a node.
	Upsert(ctx context.Context, node *domain.Node) error

	// Delete removes a node. Deleting a missing node is not an error.
	Delete(ctx context.Context, id string) error

	// Ready blocks until every pending write has been committed.
	Ready(ctx context.Context) error

	// Close releases the store.
	Close() error
}
