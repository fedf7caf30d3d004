// Package snapshot writes node graph snapshots after a build.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

const timeLayout = "20060102T150405Z"

// New returns the writer selected by cfg.
func New(cfg domain.SnapshotConfig) (ports.SnapshotWriter, error) {
	switch cfg.Driver {
	case domain.SnapshotDriverNone, "":
		return NopWriter{}, nil
	case domain.SnapshotDriverFile:
		return NewFileWriter(cfg.Path), nil
	case domain.SnapshotDriverS3:
		return NewS3Writer(S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
			UseSSL:    cfg.UseSSL,
		})
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrSnapshotWriteFailed, "unknown snapshot driver"), "driver", cfg.Driver)
	}
}

// ObjectName returns the file or object name for s.
func ObjectName(s *domain.Snapshot) string {
	id := domain.CreateNodeID("snapshot", s.TraceID)
	return fmt.Sprintf("%s-%s.json", s.CreatedAt.UTC().Format(timeLayout), id[:8])
}

func encode(s *domain.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}
	return append(data, '\n'), nil
}

// NopWriter discards snapshots.
type NopWriter struct{}

// Write implements ports.SnapshotWriter.
func (NopWriter) Write(context.Context, *domain.Snapshot) (string, error) {
	return "", nil
}
