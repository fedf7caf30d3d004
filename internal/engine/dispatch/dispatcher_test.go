package dispatch_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.trai.ch/grove/internal/engine/dispatch"
	"go.trai.ch/grove/internal/engine/ownership"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	dispatcher *dispatch.Dispatcher
	store      *mocks.MockNodeStore
	logger     *mocks.MockLogger
	state      *domain.State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockNodeStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	state := domain.NewState()

	return &fixture{
		dispatcher: dispatch.NewDispatcher(store, state, ownership.NewTracker(state.TypeOwners()), log),
		store:      store,
		logger:     log,
		state:      state,
	}
}

func fileNode(id, digest string) *domain.Node {
	return &domain.Node{
		ID:       id,
		Internal: domain.NodeInternal{Type: "File", ContentDigest: digest},
	}
}

func TestDispatcher_CreateNode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	plugin := domain.PluginNamed("fs")

	f.store.EXPECT().GetNode(ctx, "1").Return(nil, nil)
	f.store.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, n *domain.Node) error {
		assert.Equal(t, "fs", n.Owner(), "owner is set from the plugin")
		return nil
	})

	input := fileNode("1", "a")
	require.NoError(t, f.dispatcher.CreateNode(ctx, input, plugin))

	assert.Empty(t, input.Owner(), "caller's node is not mutated")
	assert.True(t, f.state.IsTouched("1"))

	owner, ok := f.state.TypeOwners().OwnerOf("File")
	require.True(t, ok)
	assert.Equal(t, "fs", owner)

	actions := f.dispatcher.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionCreateNode, actions[0].Type)
	assert.Equal(t, "1", actions[0].NodeID)
}

func TestDispatcher_CreateNode_UnchangedDigestTouches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	plugin := domain.PluginNamed("fs")

	stored := fileNode("1", "same")
	stored.Internal.Owner = "fs"
	f.store.EXPECT().GetNode(ctx, "1").Return(stored, nil)
	// No Upsert expected.

	require.NoError(t, f.dispatcher.CreateNode(ctx, fileNode("1", "same"), plugin))
	assert.True(t, f.state.IsTouched("1"))

	actions := f.dispatcher.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionTouchNode, actions[0].Type)
}

func TestDispatcher_CreateNode_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing plugin", func(t *testing.T) {
		f := newFixture(t)
		err := f.dispatcher.CreateNode(ctx, fileNode("1", ""), nil)
		require.ErrorIs(t, err, domain.ErrPluginRequired)
	})

	t.Run("missing type", func(t *testing.T) {
		f := newFixture(t)
		err := f.dispatcher.CreateNode(ctx, &domain.Node{ID: "1"}, domain.PluginNamed("fs"))
		require.ErrorIs(t, err, domain.ErrInvalidNode)
	})

	t.Run("missing id", func(t *testing.T) {
		f := newFixture(t)
		err := f.dispatcher.CreateNode(ctx, &domain.Node{Internal: domain.NodeInternal{Type: "File"}}, domain.PluginNamed("fs"))
		require.ErrorIs(t, err, domain.ErrInvalidNode)
	})

	t.Run("store read failure", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("boom")
		f.store.EXPECT().GetNode(ctx, "1").Return(nil, boom)
		err := f.dispatcher.CreateNode(ctx, fileNode("1", ""), domain.PluginNamed("fs"))
		require.ErrorIs(t, err, boom)
		assert.False(t, f.state.IsTouched("1"))
	})

	t.Run("type owned by another plugin", func(t *testing.T) {
		f := newFixture(t)
		f.state.TypeOwners().Claim("File", "other")
		f.store.EXPECT().GetNode(ctx, "1").Return(nil, nil)

		err := f.dispatcher.CreateNode(ctx, fileNode("1", ""), domain.PluginNamed("fs"))
		require.ErrorIs(t, err, domain.ErrOwnershipConflict)
		assert.False(t, f.state.IsTouched("1"))
	})
}

func TestDispatcher_DeleteNode(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		f := newFixture(t)
		f.state.TypeOwners().Claim("File", "fs")
		f.state.Touch("1")
		f.store.EXPECT().GetNode(ctx, "1").Return(nil, nil)
		f.store.EXPECT().Delete(ctx, "1").Return(nil)

		require.NoError(t, f.dispatcher.DeleteNode(ctx, fileNode("1", ""), domain.PluginNamed("fs")))
		assert.False(t, f.state.IsTouched("1"))
	})

	t.Run("system deletes anything", func(t *testing.T) {
		f := newFixture(t)
		f.state.TypeOwners().Claim("File", "fs")
		f.store.EXPECT().GetNode(ctx, "1").Return(fileNode("1", ""), nil)
		f.store.EXPECT().Delete(ctx, "1").Return(nil)

		require.NoError(t, f.dispatcher.DeleteNode(ctx, &domain.Node{ID: "1"}, nil))
	})

	t.Run("stored type is used for the ownership check", func(t *testing.T) {
		f := newFixture(t)
		f.state.TypeOwners().Claim("File", "fs")
		f.state.TypeOwners().Claim("Page", "site")
		f.store.EXPECT().GetNode(ctx, "1").Return(fileNode("1", ""), nil)

		spoofed := &domain.Node{ID: "1", Internal: domain.NodeInternal{Type: "Page"}}
		err := f.dispatcher.DeleteNode(ctx, spoofed, domain.PluginNamed("site"))
		require.ErrorIs(t, err, domain.ErrOwnershipViolation)
	})
}

func TestDispatcher_TouchNode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.dispatcher.TouchNode(ctx, fileNode("1", ""), domain.PluginNamed("fs")))
	assert.True(t, f.state.IsTouched("1"))

	err := f.dispatcher.TouchNode(ctx, fileNode("2", ""), domain.PluginNamed("other"))
	require.ErrorIs(t, err, domain.ErrOwnershipConflict)
	assert.False(t, f.state.IsTouched("2"))

	require.ErrorIs(t, f.dispatcher.TouchNode(ctx, fileNode("3", ""), nil), domain.ErrPluginRequired)
}

func TestDispatcher_APIFinished(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.APIFinished(context.Background(), domain.SourceNodesAPI)

	actions := f.dispatcher.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionAPIFinished, actions[0].Type)
	assert.Equal(t, domain.SourceNodesAPI, actions[0].API)
}

func TestDispatcher_Restore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := fileNode("1", "")
	a.Internal.Owner = "fs"
	b := fileNode("2", "")
	b.Internal.Owner = "intruder"
	c := &domain.Node{ID: "3", Internal: domain.NodeInternal{Type: "Orphan"}}

	f.store.EXPECT().IterateNodes(ctx).Return(iter.Seq2[*domain.Node, error](func(yield func(*domain.Node, error) bool) {
		for _, n := range []*domain.Node{a, b, c} {
			if !yield(n, nil) {
				return
			}
		}
	}))
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	require.NoError(t, f.dispatcher.Restore(ctx))

	owner, ok := f.state.TypeOwners().OwnerOf("File")
	require.True(t, ok)
	assert.Equal(t, "fs", owner)
	_, ok = f.state.TypeOwners().OwnerOf("Orphan")
	assert.False(t, ok)
}

func TestDispatcher_ActionLogWraps(t *testing.T) {
	f := newFixture(t)
	for range dispatch.ActionLogSize + 5 {
		f.dispatcher.APIFinished(context.Background(), "x")
	}
	assert.Len(t, f.dispatcher.Actions(), dispatch.ActionLogSize)
}
