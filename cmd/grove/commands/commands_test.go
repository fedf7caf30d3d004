package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/cmd/grove/commands"
	"go.trai.ch/grove/internal/app"
	"go.trai.ch/grove/internal/build"
)

type mockApp struct {
	verbose, json bool
	logOptionsSet bool

	build   *app.BuildOptions
	develop *app.DevelopOptions
	nodes   *string
	clean   *app.CleanOptions
	err     error
}

func (m *mockApp) SetLogOptions(verbose, json bool) {
	m.verbose, m.json, m.logOptionsSet = verbose, json, true
}

func (m *mockApp) Build(_ context.Context, opts app.BuildOptions) error {
	m.build = &opts
	return m.err
}

func (m *mockApp) Develop(_ context.Context, opts app.DevelopOptions) error {
	m.develop = &opts
	return m.err
}

func (m *mockApp) Nodes(_ context.Context, typeName string) error {
	m.nodes = &typeName
	return m.err
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	m.clean = &opts
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "build", "--plugin", "grove-source-filesystem", "--defer-node-mutation", "-v")
	require.NoError(t, err)

	require.NotNil(t, m.build)
	assert.Equal(t, app.BuildOptions{PluginName: "grove-source-filesystem", DeferNodeMutation: true}, *m.build)
	assert.True(t, m.logOptionsSet)
	assert.True(t, m.verbose)
	assert.False(t, m.json)
}

func TestCommands_BuildError(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, m, "build", "--no-snapshot")
	require.EqualError(t, err, "simulated error")
	assert.True(t, m.build.NoSnapshot)
}

func TestCommands_BuildRejectsArgs(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "build", "extra")
	require.Error(t, err)
	assert.Nil(t, m.build)
}

func TestCommands_Develop(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "develop", "--no-watch", "--json")
	require.NoError(t, err)
	require.NotNil(t, m.develop)
	assert.True(t, m.develop.NoWatch)
	assert.True(t, m.json)
}

func TestCommands_Nodes(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "nodes", "--type", "File")
	require.NoError(t, err)
	require.NotNil(t, m.nodes)
	assert.Equal(t, "File", *m.nodes)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		args []string
		want app.CleanOptions
	}{
		{[]string{"clean"}, app.CleanOptions{Store: true}},
		{[]string{"clean", "--snapshots"}, app.CleanOptions{Snapshots: true}},
		{[]string{"clean", "-a"}, app.CleanOptions{Store: true, Snapshots: true}},
	}
	for _, tt := range tests {
		m := &mockApp{}
		_, err := execute(t, m, tt.args...)
		require.NoError(t, err)
		require.NotNil(t, m.clean)
		assert.Equal(t, tt.want, *m.clean, tt.args)
	}
}

func TestCommands_Version(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "grove version "+build.Version)
	assert.False(t, m.logOptionsSet)
}
