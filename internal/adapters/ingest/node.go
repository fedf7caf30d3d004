package ingest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the ingestion source Graft node.
const NodeID graft.ID = "adapter.ingestion"

func init() {
	graft.Register(graft.Node[ports.IngestionSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.IngestionSource, error) {
			return NewSource(), nil
		},
	})
}
