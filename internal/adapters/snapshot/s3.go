package snapshot

import (
	"bytes"
	"context"
	"path"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// S3Config configures an S3Writer.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Writer uploads snapshots to an S3 compatible bucket.
type S3Writer struct {
	client *minio.Client
	bucket string
	prefix string

	initOnce sync.Once
	initErr  error
}

// NewS3Writer creates an S3Writer. The bucket is created on first write if missing.
func NewS3Writer(cfg S3Config) (*S3Writer, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "endpoint", cfg.Endpoint)
	}
	return &S3Writer{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (w *S3Writer) ensureBucket(ctx context.Context) error {
	w.initOnce.Do(func() {
		exists, err := w.client.BucketExists(ctx, w.bucket)
		if err != nil {
			w.initErr = err
			return
		}
		if !exists {
			w.initErr = w.client.MakeBucket(ctx, w.bucket, minio.MakeBucketOptions{})
		}
	})
	return w.initErr
}

// Key returns the object key s is stored under.
func (w *S3Writer) Key(s *domain.Snapshot) string {
	return path.Join(w.prefix, ObjectName(s))
}

// Write implements ports.SnapshotWriter.
func (w *S3Writer) Write(ctx context.Context, s *domain.Snapshot) (string, error) {
	if err := w.ensureBucket(ctx); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "bucket", w.bucket)
	}

	data, err := encode(s)
	if err != nil {
		return "", err
	}

	key := w.Key(s)
	_, err = w.client.PutObject(ctx, w.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "key", key)
	}
	return "s3://" + w.bucket + "/" + key, nil
}
