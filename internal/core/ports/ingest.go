package ports

import (
	"context"
	"iter"
)

// IngestionSource streams newline-delimited ingestion events.
//
//go:generate mockgen -source=ingest.go -destination=mocks/mock_ingest.go -package=mocks
type IngestionSource interface {
	// Lines yields each line of the stream at url as it arrives.
	// A transport failure is yielded as a final error.
	Lines(ctx context.Context, url string) iter.Seq2[[]byte, error]
}
