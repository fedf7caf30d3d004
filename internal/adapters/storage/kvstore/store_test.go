package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/storage/kvstore"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(t *testing.T) ports.Logger {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func openStore(t *testing.T, opts kvstore.Options) *kvstore.Store {
	t.Helper()
	s, err := kvstore.Open(opts, quietLogger(t))
	require.NoError(t, err)
	return s
}

func page(id string, fields map[string]any) *domain.Node {
	return &domain.Node{
		ID:       id,
		Internal: domain.NodeInternal{Type: "Page", Owner: "pages", ContentDigest: "d-" + id},
		Fields:   fields,
	}
}

func collect(t *testing.T, s ports.NodeStore) []string {
	t.Helper()
	var ids []string
	for n, err := range s.IterateNodes(context.Background()) {
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	return ids
}

func TestStore_PendingWritesAreVisible(t *testing.T) {
	s := openStore(t, kvstore.Options{InMemory: true, CacheSize: 8})
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, page("b", nil)))
	require.NoError(t, s.Upsert(ctx, page("a", nil)))

	got, err := s.GetNode(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Page", got.Type())
	assert.Equal(t, []string{"a", "b"}, collect(t, s))

	require.NoError(t, s.Ready(ctx))
	assert.Equal(t, []string{"a", "b"}, collect(t, s))
}

func TestStore_Delete(t *testing.T) {
	s := openStore(t, kvstore.Options{InMemory: true, CacheSize: 8})
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, page("a", nil)))
	require.NoError(t, s.Upsert(ctx, page("b", nil)))
	require.NoError(t, s.Ready(ctx))

	require.NoError(t, s.Delete(ctx, "a"))
	got, err := s.GetNode(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got, "pending delete hides the committed node")
	assert.Equal(t, []string{"b"}, collect(t, s))

	require.NoError(t, s.Ready(ctx))
	got, err = s.GetNode(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Delete(ctx, "missing"), "deleting a missing node is not an error")
	require.NoError(t, s.Ready(ctx))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := openStore(t, kvstore.Options{Path: dir, CacheSize: 8})
	require.NoError(t, s.Upsert(ctx, page("1", map[string]any{"title": "Hello"})))
	child := page("2", nil)
	child.Parent = "1"
	require.NoError(t, s.Upsert(ctx, child))
	require.NoError(t, s.Close(), "close commits pending writes")

	s = openStore(t, kvstore.Options{Path: dir, CacheSize: 1})
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.GetNode(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pages", got.Owner())
	assert.Equal(t, "d-1", got.Internal.ContentDigest)
	assert.Equal(t, "Hello", got.Fields["title"])

	got, err = s.GetNode(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.Parent)

	// Reading "1" again after "2" evicted it from the single-entry cache.
	got, err = s.GetNode(ctx, "1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStore_CloseStopsFlusher(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := openStore(t, kvstore.Options{Path: dir, CacheSize: 8, FlushInterval: 5 * time.Millisecond})
	require.NoError(t, s.Upsert(ctx, page("1", nil)))
	require.NoError(t, s.Close())

	s = openStore(t, kvstore.Options{Path: dir, CacheSize: 8})
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, []string{"1"}, collect(t, s))
}

func TestStore_ReadyHonorsContext(t *testing.T) {
	s := openStore(t, kvstore.Options{InMemory: true})
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Ready(ctx), context.Canceled)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := kvstore.Open(kvstore.Options{}, quietLogger(t))
	require.ErrorIs(t, err, domain.ErrStoreOpenFailed)
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	s := openStore(t, kvstore.Options{InMemory: true})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
