package domain

import "path/filepath"

const (
	// GroveDirName is the name of the internal workspace directory.
	GroveDirName = ".grove"

	// StoreDirName is the name of the node store directory.
	StoreDirName = "nodes"

	// SnapshotDirName is the name of the snapshot directory.
	SnapshotDirName = "snapshots"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "grove.yaml"

	// EnvFileName is the name of the optional dotenv file next to the config.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultGrovePath returns the default root directory for grove metadata.
func DefaultGrovePath() string {
	return GroveDirName
}

// DefaultStorePath returns the default path for the node store.
// It joins .grove and nodes.
func DefaultStorePath() string {
	return filepath.Join(GroveDirName, StoreDirName)
}

// DefaultSnapshotPath returns the default path for node graph snapshots.
// It joins .grove and snapshots.
func DefaultSnapshotPath() string {
	return filepath.Join(GroveDirName, SnapshotDirName)
}
