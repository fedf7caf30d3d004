package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileWriter writes snapshots as JSON files into a directory.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a FileWriter rooted at dir.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

// Write implements ports.SnapshotWriter. The file is written to a temporary
// name first and renamed into place.
func (w *FileWriter) Write(ctx context.Context, s *domain.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encode(s)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "dir", w.dir)
	}

	path := filepath.Join(w.dir, ObjectName(s))
	tmp, err := os.CreateTemp(w.dir, ".snapshot-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "dir", w.dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	return path, nil
}
