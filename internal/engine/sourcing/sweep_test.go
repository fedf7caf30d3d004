package sourcing_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/engine/sourcing"
)

func TestRootID(t *testing.T) {
	store := newMapStore(
		owned("root", "", "p"),
		owned("mid", "root", "p"),
		owned("leaf", "mid", "p"),
		owned("orphan", "missing", "p"),
		owned("self", "self", "p"),
	)

	tests := []struct {
		name  string
		id    string
		want  string
		warns int
	}{
		{name: "root is its own root", id: "root", want: "root"},
		{name: "walks every ancestor", id: "leaf", want: "root"},
		{name: "dangling parent stops the walk", id: "orphan", want: "orphan"},
		{name: "self parent is bounded", id: "self", want: "self", warns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			n, err := store.GetNode(context.Background(), tt.id)
			require.NoError(t, err)

			got, err := sourcing.RootID(context.Background(), store, n, log)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, log.warnings(), tt.warns)
		})
	}
}

func TestRootID_BoundedChain(t *testing.T) {
	// A chain one hop longer than the bound stops short of the true root.
	nodes := []*domain.Node{owned("n0", "", "p")}
	for i := 1; i <= sourcing.MaxParentHops+1; i++ {
		nodes = append(nodes, owned(nodeName(i), nodeName(i-1), "p"))
	}
	store := newMapStore(nodes...)
	log := &recordingLogger{}

	got, err := sourcing.RootID(context.Background(), store, nodes[len(nodes)-1], log)
	require.NoError(t, err)
	assert.Equal(t, "n1", got)
	assert.Len(t, log.warnings(), 1)
}

func TestStaleNodes(t *testing.T) {
	store := newMapStore(
		owned("a", "", "p"),
		owned("a-child", "a", "p"),
		owned("b", "", "p"),
		owned("b-child", "b", "p"),
		owned("self", "self", "p"),
	)
	touched := map[string]struct{}{"a": {}}

	stale, err := sourcing.StaleNodes(context.Background(), store, touched, &recordingLogger{})
	require.NoError(t, err)

	var ids []string
	for _, n := range stale {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"b", "b-child", "self"}, ids)
}

func nodeName(i int) string {
	return "n" + strconv.Itoa(i)
}
