package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/watcher"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".grove", "nodes"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "content"), 0o750))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	w := watcher.NewWatcher(logger)
	require.NoError(t, w.Start(ctx, root))
	t.Cleanup(func() { _ = w.Stop() })

	events := make(chan ports.WatchEvent, 16)
	go func() {
		for e := range w.Events() {
			events <- e
		}
		close(events)
	}()

	// Writes below .grove are the node store's own and must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, ".grove", "nodes", "000001.vlog"), []byte("x"), 0o600))
	target := filepath.Join(root, "content", "index.md")
	require.NoError(t, os.WriteFile(target, []byte("# hi"), 0o600))

	select {
	case e := <-events:
		assert.Equal(t, target, e.Path)
		assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, e.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event received")
	}

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := watcher.NewWatcher(mocks.NewMockLogger(ctrl))

	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	// A missing root yields no directories to watch.
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}
