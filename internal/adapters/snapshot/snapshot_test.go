package snapshot_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/snapshot"
	"go.trai.ch/grove/internal/core/domain"
)

func sample() *domain.Snapshot {
	return &domain.Snapshot{
		TraceID:    "initial-sourceNodes",
		CreatedAt:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		TypeOwners: map[string]string{"File": "grove-source-filesystem"},
		Nodes: []*domain.Node{{
			ID:       "a",
			Internal: domain.NodeInternal{Type: "File", Owner: "grove-source-filesystem"},
			Fields:   map[string]any{"path": "index.md"},
		}},
	}
}

func TestObjectName(t *testing.T) {
	name := snapshot.ObjectName(sample())
	assert.Regexp(t, `^20260301T123000Z-[0-9a-f]{8}\.json$`, name)
	assert.Equal(t, name, snapshot.ObjectName(sample()))
}

func TestFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	w := snapshot.NewFileWriter(dir)

	location, err := w.Write(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, snapshot.ObjectName(sample())), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)

	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "initial-sourceNodes", got.TraceID)
	require.Len(t, got.Nodes, 1)
	assert.Equal(t, "index.md", got.Nodes[0].Fields["path"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestFileWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := snapshot.NewFileWriter(t.TempDir()).Write(ctx, sample())
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	w, err := snapshot.New(domain.SnapshotConfig{Driver: domain.SnapshotDriverNone})
	require.NoError(t, err)
	location, err := w.Write(context.Background(), sample())
	require.NoError(t, err)
	assert.Empty(t, location)

	w, err = snapshot.New(domain.SnapshotConfig{Driver: domain.SnapshotDriverFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &snapshot.FileWriter{}, w)

	w, err = snapshot.New(domain.SnapshotConfig{
		Driver:   domain.SnapshotDriverS3,
		Endpoint: "localhost:9000",
		Bucket:   "grove",
		Prefix:   "snapshots",
	})
	require.NoError(t, err)
	s3, ok := w.(*snapshot.S3Writer)
	require.True(t, ok)
	assert.Equal(t, "snapshots/"+snapshot.ObjectName(sample()), s3.Key(sample()))

	_, err = snapshot.New(domain.SnapshotConfig{Driver: "ftp"})
	require.ErrorIs(t, err, domain.ErrSnapshotWriteFailed)
}

// TestS3Writer runs against a real S3 compatible endpoint such as MinIO.
func TestS3Writer(t *testing.T) {
	endpoint := os.Getenv("GROVE_TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("GROVE_TEST_S3_ENDPOINT not set")
	}

	w, err := snapshot.NewS3Writer(snapshot.S3Config{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("GROVE_TEST_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("GROVE_TEST_S3_SECRET_KEY"),
		Bucket:    "grove-test",
		Prefix:    "snapshots",
	})
	require.NoError(t, err)

	location, err := w.Write(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, "s3://grove-test/snapshots/"+snapshot.ObjectName(sample()), location)
}
