package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Grovefile is the structure of grove.yaml.
type Grovefile struct {
	SiteName  string       `yaml:"siteName"`
	Root      string       `yaml:"root"`
	Store     StoreDTO     `yaml:"store"`
	Plugins   []PluginDTO  `yaml:"plugins"`
	Ingestion IngestionDTO `yaml:"ingestion"`
	Server    ServerDTO    `yaml:"server"`
	Snapshot  SnapshotDTO  `yaml:"snapshot"`
	Watch     WatchDTO     `yaml:"watch"`
	Log       LogDTO       `yaml:"log"`
}

// StoreDTO configures the node store.
type StoreDTO struct {
	Driver        string        `yaml:"driver"`
	Path          string        `yaml:"path"`
	DSN           string        `yaml:"dsn"`
	CacheSize     int           `yaml:"cacheSize"`
	FlushInterval time.Duration `yaml:"flushInterval"`
	SyncWrites    bool          `yaml:"syncWrites"`
}

// PluginDTO is a plugin entry. A bare string entry is shorthand for {name: ...}.
type PluginDTO struct {
	Name    string         `yaml:"name"`
	Version string         `yaml:"version"`
	Resolve string         `yaml:"resolve"`
	Options map[string]any `yaml:"options"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PluginDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Name = value.Value
		return nil
	}

	type plain PluginDTO
	return value.Decode((*plain)(p))
}

// IngestionDTO configures streaming ingestion.
type IngestionDTO struct {
	ToggleEnv string   `yaml:"toggleEnv"`
	AlwaysRun []string `yaml:"alwaysRun"`
}

// ServerDTO configures the develop server.
type ServerDTO struct {
	Addr            string `yaml:"addr"`
	RefreshEndpoint bool   `yaml:"refreshEndpoint"`
}

// SnapshotDTO configures post-build snapshots.
type SnapshotDTO struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
}

// WatchDTO configures develop mode file watching.
type WatchDTO struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LogDTO configures log output.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
