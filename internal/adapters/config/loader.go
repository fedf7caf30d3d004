// Package config provides the configuration loader for grove.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvStoreDriver     = "GROVE_STORE_DRIVER"
	EnvStoreDSN        = "GROVE_STORE_DSN"
	EnvS3AccessKey     = "GROVE_S3_ACCESS_KEY"
	EnvS3SecretKey     = "GROVE_S3_SECRET_KEY"
	EnvRefreshEndpoint = "GROVE_REFRESH_ENDPOINT"
	EnvLogJSON         = "GROVE_LOG_JSON"
)

// Defaults applied when grove.yaml leaves a value unset.
const (
	DefaultServerAddr    = "localhost:8000"
	DefaultCacheSize     = 4096
	DefaultFlushInterval = 50 * time.Millisecond
	DefaultDebounce      = 100 * time.Millisecond
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using grove.yaml.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// DiscoverRoot returns the directory of the nearest grove.yaml at or above
// cwd, or cwd when there is none.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, found, err := findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return filepath.Clean(cwd), nil
	}
	return filepath.Dir(configPath), nil
}

// Load reads grove.yaml and the adjacent .env file, applies defaults and
// environment overrides and validates the result.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, found, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Grovefile
	configDir := filepath.Clean(cwd)
	if found {
		configDir = filepath.Dir(configPath)
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
	} else {
		l.Logger.Debug(fmt.Sprintf("no %s found above %s, using defaults", domain.ConfigFileName, cwd))
	}

	if err := loadDotenv(filepath.Join(configDir, domain.EnvFileName)); err != nil {
		return nil, err
	}

	cfg := buildConfig(&file, resolveRoot(configDir, file.Root))
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := l.validate.Struct(cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "path", configPath)
	}

	return cfg, nil
}

// findConfiguration walks up from cwd looking for grove.yaml.
func findConfiguration(cwd string) (string, bool, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func resolveRoot(configDir, configuredRoot string) string {
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// resolvePath makes p absolute relative to root, falling back to def.
func resolvePath(root, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by findConfiguration
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// loadDotenv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
}

func buildConfig(file *Grovefile, root string) *domain.Config {
	cfg := &domain.Config{
		Root:     root,
		SiteName: file.SiteName,
		Store: domain.StoreConfig{
			Driver:        valueOr(file.Store.Driver, domain.StoreDriverBadger),
			Path:          resolvePath(root, file.Store.Path, domain.DefaultStorePath()),
			DSN:           file.Store.DSN,
			CacheSize:     valueOr(file.Store.CacheSize, DefaultCacheSize),
			FlushInterval: valueOr(file.Store.FlushInterval, DefaultFlushInterval),
			SyncWrites:    file.Store.SyncWrites,
		},
		Ingestion: domain.IngestionConfig{
			ToggleEnv: valueOr(file.Ingestion.ToggleEnv, domain.DefaultIngestionToggle),
			AlwaysRun: file.Ingestion.AlwaysRun,
		},
		Server: domain.ServerConfig{
			Addr:            valueOr(file.Server.Addr, DefaultServerAddr),
			RefreshEndpoint: file.Server.RefreshEndpoint,
		},
		Snapshot: domain.SnapshotConfig{
			Driver:    valueOr(file.Snapshot.Driver, domain.SnapshotDriverNone),
			Path:      resolvePath(root, file.Snapshot.Path, domain.DefaultSnapshotPath()),
			Endpoint:  file.Snapshot.Endpoint,
			Bucket:    file.Snapshot.Bucket,
			Prefix:    file.Snapshot.Prefix,
			AccessKey: file.Snapshot.AccessKey,
			SecretKey: file.Snapshot.SecretKey,
			UseSSL:    file.Snapshot.UseSSL,
		},
		Watch: domain.WatchConfig{
			Debounce: valueOr(file.Watch.Debounce, DefaultDebounce),
		},
		Log: domain.LogConfig{JSON: file.Log.JSON},
	}

	if cfg.Ingestion.AlwaysRun == nil {
		cfg.Ingestion.AlwaysRun = domain.DefaultAlwaysRunPlugins
	}

	for _, p := range file.Plugins {
		cfg.Plugins = append(cfg.Plugins, domain.Plugin{
			Name:    p.Name,
			Version: p.Version,
			Resolve: p.Resolve,
			Options: p.Options,
		})
	}

	return cfg
}

func applyEnv(cfg *domain.Config) error {
	if v := os.Getenv(EnvStoreDriver); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv(EnvStoreDSN); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv(EnvS3AccessKey); v != "" {
		cfg.Snapshot.AccessKey = v
	}
	if v := os.Getenv(EnvS3SecretKey); v != "" {
		cfg.Snapshot.SecretKey = v
	}

	for name, target := range map[string]*bool{
		EnvRefreshEndpoint: &cfg.Server.RefreshEndpoint,
		EnvLogJSON:         &cfg.Log.JSON,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "env", name)
		}
		*target = b
	}
	return nil
}

func valueOr[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
