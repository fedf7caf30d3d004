package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change a watch event reports.
type WatchOp uint8

const (
	// OpCreate reports a created file or directory.
	OpCreate WatchOp = iota
	// OpWrite reports a modified file.
	OpWrite
	// OpRemove reports a removed file or directory.
	OpRemove
	// OpRename reports a renamed file or directory.
	OpRename
)

// WatchEvent is a single change under a watched source directory.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes under source directories so develop mode can re-source.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher. Events ends after Stop.
	Stop() error
	// Events yields change events until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
