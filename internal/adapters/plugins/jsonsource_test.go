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

func TestJSONSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "data", "posts.json"), `[
  {"slug": "hello", "title": "Hello", "id": "ignored", "comments": [{"slug": "c1", "body": "nice"}, {"body": "meh"}]},
  {"slug": "bye", "title": "Bye"}
]`)
	writeFile(t, filepath.Join(root, "data", "about.yaml"), "slug: about\ntitle: About\n")
	writeFile(t, filepath.Join(root, "data", "README.md"), "not a record")

	cfg := &domain.Config{Root: root, Plugins: []domain.Plugin{{
		Name: plugins.JSONPlugin,
		Options: map[string]any{
			"path":          "data",
			"type":          "Post",
			"idField":       "slug",
			"childrenField": "comments",
			"childType":     "Comment",
		},
	}}}
	registry, err := plugins.NewRegistry(cfg, plugins.Builtins)
	require.NoError(t, err)

	actions := newMemActions(plugins.JSONPlugin)
	require.NoError(t, source(t, registry, plugins.JSONPlugin, actions, nopLogger{}))

	posts := actions.byType("Post")
	require.Len(t, posts, 3)

	hello, err := actions.GetNode(t.Context(), domain.CreateNodeID(plugins.JSONPlugin, "Post:hello"))
	require.NoError(t, err)
	require.NotNil(t, hello)
	assert.Equal(t, "Hello", hello.Fields["title"])
	assert.NotContains(t, hello.Fields, "comments")
	assert.NotContains(t, hello.Fields, "id")
	assert.Empty(t, hello.Parent)

	comments := actions.byType("Comment")
	require.Len(t, comments, 2)
	for _, c := range comments {
		assert.Equal(t, hello.ID, c.Parent)
	}
	c1, err := actions.GetNode(t.Context(), domain.CreateNodeID(plugins.JSONPlugin, "Comment:hello/c1"))
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, "nice", c1.Fields["body"])

	// Dropping a record deletes its node on the next run.
	writeFile(t, filepath.Join(root, "data", "posts.json"), `[{"slug": "bye", "title": "Bye"}]`)
	require.NoError(t, source(t, registry, plugins.JSONPlugin, actions, nopLogger{}))

	assert.Len(t, actions.byType("Post"), 2)
	assert.Empty(t, actions.byType("Comment"))
	assert.Len(t, actions.deleted, 3)
}

func TestJSONSource_SingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "site.yml")
	writeFile(t, path, "- name: a\n- name: b\n")

	cfg := &domain.Config{Root: root, Plugins: []domain.Plugin{{
		Name:    plugins.JSONPlugin,
		Options: map[string]any{"path": "site.yml", "type": "Author", "idField": "name"},
	}}}
	registry, err := plugins.NewRegistry(cfg, plugins.Builtins)
	require.NoError(t, err)

	actions := newMemActions(plugins.JSONPlugin)
	require.NoError(t, source(t, registry, plugins.JSONPlugin, actions, nopLogger{}))
	assert.Len(t, actions.byType("Author"), 2)
}

func TestJSONSource_Errors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.json"), `"just a string"`)

	cfg := &domain.Config{Root: root, Plugins: []domain.Plugin{{
		Name:    plugins.JSONPlugin,
		Options: map[string]any{"path": "bad.json", "type": "Thing"},
	}}}
	registry, err := plugins.NewRegistry(cfg, plugins.Builtins)
	require.NoError(t, err)

	err = source(t, registry, plugins.JSONPlugin, newMemActions(plugins.JSONPlugin), nopLogger{})
	require.ErrorContains(t, err, "records must be an object")

	require.NoError(t, os.Remove(filepath.Join(root, "bad.json")))
	err = source(t, registry, plugins.JSONPlugin, newMemActions(plugins.JSONPlugin), nopLogger{})
	require.ErrorContains(t, err, "failed to stat record path")
}
