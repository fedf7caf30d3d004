package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/config"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, domain.ConfigFileName, `
siteName: garden
store:
  driver: memory
  cacheSize: 16
  flushInterval: 10ms
plugins:
  - internal-data-bridge
  - name: grove-source-filesystem
    options:
      name: pages
      path: content
ingestion:
  alwaysRun: [grove-source-filesystem]
server:
  addr: ":9000"
  refreshEndpoint: true
watch:
  debounce: 250ms
`)

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "garden", cfg.SiteName)
	assert.Equal(t, domain.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 16, cfg.Store.CacheSize)
	assert.Equal(t, 10*time.Millisecond, cfg.Store.FlushInterval)
	assert.Equal(t, filepath.Join(root, ".grove", "nodes"), cfg.Store.Path)

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, "internal-data-bridge", cfg.Plugins[0].Name)
	assert.Equal(t, "grove-source-filesystem", cfg.Plugins[1].Name)
	assert.Equal(t, "content", cfg.Plugins[1].Options["path"])

	assert.Equal(t, domain.DefaultIngestionToggle, cfg.Ingestion.ToggleEnv)
	assert.Equal(t, []string{"grove-source-filesystem"}, cfg.Ingestion.AlwaysRun)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.RefreshEndpoint)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, domain.SnapshotDriverNone, cfg.Snapshot.Driver)
}

func TestLoader_Load_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.StoreDriverBadger, cfg.Store.Driver)
	assert.Equal(t, config.DefaultCacheSize, cfg.Store.CacheSize)
	assert.Equal(t, config.DefaultFlushInterval, cfg.Store.FlushInterval)
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, config.DefaultDebounce, cfg.Watch.Debounce)
	assert.Equal(t, domain.DefaultAlwaysRunPlugins, cfg.Ingestion.AlwaysRun)
	assert.Empty(t, cfg.Plugins)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, domain.ConfigFileName, "siteName: up\n")
	deep := filepath.Join(root, "src", "pages")
	require.NoError(t, os.MkdirAll(deep, domain.DirPerm))

	loader := newLoader(t)
	cfg, err := loader.Load(deep)
	require.NoError(t, err)
	assert.Equal(t, "up", cfg.SiteName)
	assert.Equal(t, root, cfg.Root)

	discovered, err := loader.DiscoverRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, root, discovered)
}

func TestLoader_DiscoverRoot_NoConfig(t *testing.T) {
	dir := t.TempDir()

	got, err := newLoader(t).DiscoverRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestLoader_Load_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, domain.ConfigFileName, `
store:
  driver: badger
snapshot:
  driver: s3
  endpoint: localhost:9000
  bucket: snapshots
`)
	t.Setenv(config.EnvStoreDriver, domain.StoreDriverPostgres)
	t.Setenv(config.EnvStoreDSN, "postgres://grove@localhost/grove")
	t.Setenv(config.EnvS3AccessKey, "access")
	t.Setenv(config.EnvS3SecretKey, "secret")
	t.Setenv(config.EnvRefreshEndpoint, "true")

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://grove@localhost/grove", cfg.Store.DSN)
	assert.Equal(t, "access", cfg.Snapshot.AccessKey)
	assert.Equal(t, "secret", cfg.Snapshot.SecretKey)
	assert.True(t, cfg.Server.RefreshEndpoint)
}

func TestLoader_Load_Dotenv(t *testing.T) {
	const key = "GROVE_TEST_DOTENV_DSN"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	root := t.TempDir()
	writeFile(t, root, domain.ConfigFileName, "siteName: env\n")
	writeFile(t, root, domain.EnvFileName, key+"=from-dotenv\n")

	_, err := newLoader(t).Load(root)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "store: [",
			wantErr: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "unknown store driver",
			content: "store:\n  driver: sqlite\n",
			wantErr: domain.ErrConfigInvalid.Error(),
		},
		{
			name:    "postgres without dsn",
			content: "store:\n  driver: postgres\n",
			wantErr: domain.ErrConfigInvalid.Error(),
		},
		{
			name:    "s3 snapshot without bucket",
			content: "snapshot:\n  driver: s3\n  endpoint: localhost:9000\n",
			wantErr: domain.ErrConfigInvalid.Error(),
		},
		{
			name:    "plugin without name",
			content: "plugins:\n  - options: {a: 1}\n",
			wantErr: domain.ErrConfigInvalid.Error(),
		},
		{
			name:    "bad boolean override",
			content: "siteName: x\n",
			env:     map[string]string{config.EnvLogJSON: "maybe"},
			wantErr: domain.ErrConfigInvalid.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			root := t.TempDir()
			writeFile(t, root, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
