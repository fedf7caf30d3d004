// Package storage opens the node store selected by configuration.
package storage

import (
	"context"

	"go.trai.ch/grove/internal/adapters/storage/kvstore"
	"go.trai.ch/grove/internal/adapters/storage/pgstore"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

// Open opens the node store for cfg.
func Open(ctx context.Context, cfg domain.StoreConfig, logger ports.Logger) (ports.NodeStore, error) {
	switch cfg.Driver {
	case domain.StoreDriverBadger, "":
		return kvstore.Open(kvstore.Options{
			Path:          cfg.Path,
			SyncWrites:    cfg.SyncWrites,
			CacheSize:     cfg.CacheSize,
			FlushInterval: cfg.FlushInterval,
		}, logger)
	case domain.StoreDriverMemory:
		return kvstore.Open(kvstore.Options{
			InMemory:      true,
			CacheSize:     cfg.CacheSize,
			FlushInterval: cfg.FlushInterval,
		}, logger)
	case domain.StoreDriverPostgres:
		return pgstore.Open(ctx, cfg.DSN, cfg.CacheSize)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStoreDriver, "cannot open node store"), "driver", cfg.Driver)
	}
}
