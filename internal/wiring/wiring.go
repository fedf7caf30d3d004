// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/grove/internal/adapters/config"
	_ "go.trai.ch/grove/internal/adapters/ingest"
	_ "go.trai.ch/grove/internal/adapters/logger"
	_ "go.trai.ch/grove/internal/adapters/plugins"
	_ "go.trai.ch/grove/internal/adapters/snapshot"
	_ "go.trai.ch/grove/internal/adapters/storage"
	_ "go.trai.ch/grove/internal/adapters/telemetry"
	_ "go.trai.ch/grove/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/grove/internal/app"
	_ "go.trai.ch/grove/internal/engine/apirunner"
	_ "go.trai.ch/grove/internal/engine/dispatch"
	_ "go.trai.ch/grove/internal/engine/ownership"
	_ "go.trai.ch/grove/internal/engine/sourcing"
)
