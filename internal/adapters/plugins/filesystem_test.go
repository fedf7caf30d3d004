package plugins_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/plugins"
	"go.trai.ch/grove/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func relativePaths(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Fields["relativePath"].(string))
	}
	return out
}

func TestFilesystemSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "content", "index.md"), "# hello")
	writeFile(t, filepath.Join(root, "content", "posts", "first.md"), "first")
	writeFile(t, filepath.Join(root, "content", "debug.log"), "noise")
	writeFile(t, filepath.Join(root, "content", ".git", "HEAD"), "ref")

	cfg := &domain.Config{Root: root, Plugins: []domain.Plugin{{
		Name:    plugins.FilesystemPlugin,
		Options: map[string]any{"path": "content", "ignore": []any{"*.log"}},
	}}}
	registry, err := plugins.NewRegistry(cfg, plugins.Builtins)
	require.NoError(t, err)

	actions := newMemActions(plugins.FilesystemPlugin)
	require.NoError(t, source(t, registry, plugins.FilesystemPlugin, actions, nopLogger{}))

	files := actions.byType(plugins.FileType)
	assert.ElementsMatch(t, []string{"index.md", "posts/first.md"}, relativePaths(files))

	var post *domain.Node
	for _, n := range files {
		if n.Fields["relativePath"] == "posts/first.md" {
			post = n
		}
	}
	require.NotNil(t, post)
	assert.Equal(t, domain.CreateNodeID(plugins.FilesystemPlugin, "content:posts/first.md"), post.ID)
	assert.Equal(t, "content", post.Fields["sourceInstanceName"])
	assert.Equal(t, "posts", post.Fields["relativeDirectory"])
	assert.Equal(t, "first", post.Fields["name"])
	assert.Equal(t, "md", post.Fields["extension"])
	assert.Equal(t, int64(5), post.Fields["size"])
	assert.Len(t, post.Internal.ContentDigest, 16)

	// A removed file's node is deleted on the next run.
	require.NoError(t, os.Remove(filepath.Join(root, "content", "index.md")))
	require.NoError(t, source(t, registry, plugins.FilesystemPlugin, actions, nopLogger{}))

	assert.Equal(t, []string{"posts/first.md"}, relativePaths(actions.byType(plugins.FileType)))
	assert.Equal(t, []string{domain.CreateNodeID(plugins.FilesystemPlugin, "content:index.md")}, actions.deleted)
}

func TestFilesystemSource_DigestFollowsContent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "one")

	cfg := &domain.Config{Root: root, Plugins: []domain.Plugin{{
		Name:    plugins.FilesystemPlugin,
		Options: map[string]any{"path": root},
	}}}
	registry, err := plugins.NewRegistry(cfg, plugins.Builtins)
	require.NoError(t, err)

	actions := newMemActions(plugins.FilesystemPlugin)
	require.NoError(t, source(t, registry, plugins.FilesystemPlugin, actions, nopLogger{}))
	first := actions.byType(plugins.FileType)[0].Internal.ContentDigest

	writeFile(t, path, "two")
	require.NoError(t, source(t, registry, plugins.FilesystemPlugin, actions, nopLogger{}))
	second := actions.byType(plugins.FileType)[0].Internal.ContentDigest

	assert.NotEqual(t, first, second)
}

func TestFilesystemSource_MissingDirectory(t *testing.T) {
	cfg := &domain.Config{Root: t.TempDir(), Plugins: []domain.Plugin{{
		Name:    plugins.FilesystemPlugin,
		Options: map[string]any{"path": "nope"},
	}}}
	registry, err := plugins.NewRegistry(cfg, plugins.Builtins)
	require.NoError(t, err)

	err = source(t, registry, plugins.FilesystemPlugin, newMemActions(plugins.FilesystemPlugin), nopLogger{})
	require.ErrorContains(t, err, "failed to walk directory")
}
