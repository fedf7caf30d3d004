package ports

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
)

// SnapshotWriter persists node graph snapshots.
//
//go:generate mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks
type SnapshotWriter interface {
	// Write stores the snapshot and returns its location.
	Write(ctx context.Context, snapshot *domain.Snapshot) (string, error)
}
