package domain

import "time"

// Store drivers.
const (
	StoreDriverBadger   = "badger"
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Snapshot drivers.
const (
	SnapshotDriverNone = "none"
	SnapshotDriverFile = "file"
	SnapshotDriverS3   = "s3"
)

// DefaultIngestionToggle is the environment variable that switches sourcing to
// streaming ingestion. Its value is the stream URL.
const DefaultIngestionToggle = "GROVE_DATALAYER"

// DefaultAlwaysRunPlugins are the source plugins that still run their hook in
// streaming ingestion mode, since their data cannot come from the stream.
var DefaultAlwaysRunPlugins = []string{
	"grove-source-filesystem",
	"internal-data-bridge",
	"grove-source-git",
}

// Config is the resolved project configuration.
type Config struct {
	Root      string          `validate:"required"`
	SiteName  string
	Store     StoreConfig
	Plugins   []Plugin        `validate:"dive"`
	Ingestion IngestionConfig
	Server    ServerConfig
	Snapshot  SnapshotConfig
	Watch     WatchConfig
	Log       LogConfig
}

// StoreConfig selects and tunes the node store.
type StoreConfig struct {
	Driver        string        `validate:"oneof=badger memory postgres"`
	Path          string
	DSN           string        `validate:"required_if=Driver postgres"`
	CacheSize     int           `validate:"gte=0"`
	FlushInterval time.Duration `validate:"gte=0"`
	SyncWrites    bool
}

// IngestionConfig configures streaming ingestion mode.
type IngestionConfig struct {
	ToggleEnv string `validate:"required"`
	AlwaysRun []string
}

// ServerConfig configures the develop server.
type ServerConfig struct {
	Addr            string `validate:"required"`
	RefreshEndpoint bool
}

// SnapshotConfig configures where node graph snapshots are written after a build.
type SnapshotConfig struct {
	Driver    string `validate:"oneof=none file s3"`
	Path      string
	Endpoint  string `validate:"required_if=Driver s3"`
	Bucket    string `validate:"required_if=Driver s3"`
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// WatchConfig configures develop mode file watching.
type WatchConfig struct {
	Debounce time.Duration `validate:"gte=0"`
}

// LogConfig configures log output.
type LogConfig struct {
	JSON bool
}
