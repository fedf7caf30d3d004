// Package ingest streams newline-delimited ingestion events from a remote
// data layer over HTTP or WebSocket, or from a local file.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IngestionSource = (*Source)(nil)

// Source implements ports.IngestionSource.
type Source struct {
	client *http.Client
	dialer *websocket.Dialer
}

// NewSource creates a Source using the default HTTP client and WebSocket dialer.
func NewSource() *Source {
	return &Source{
		client: http.DefaultClient,
		dialer: websocket.DefaultDialer,
	}
}

// Lines yields each line of the stream at rawURL. Supported schemes are
// http, https, ws, wss and file.
func (s *Source) Lines(ctx context.Context, rawURL string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		u, err := url.Parse(rawURL)
		if err != nil {
			yield(nil, zerr.With(zerr.Wrap(err, domain.ErrUnsupportedIngestionScheme.Error()), "url", rawURL))
			return
		}

		switch u.Scheme {
		case "http", "https":
			s.httpLines(ctx, rawURL, yield)
		case "ws", "wss":
			s.wsLines(ctx, rawURL, yield)
		case "file":
			fileLines(u.Path, yield)
		default:
			yield(nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedIngestionScheme, "cannot stream ingestion events"), "scheme", u.Scheme))
		}
	}
}

func (s *Source) httpLines(ctx context.Context, rawURL string, yield func([]byte, error) bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		yield(nil, err)
		return
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := s.client.Do(req)
	if err != nil {
		yield(nil, err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		yield(nil, fmt.Errorf("unexpected status %s", resp.Status))
		return
	}

	readLines(resp.Body, yield)
}

func (s *Source) wsLines(ctx context.Context, rawURL string, yield func([]byte, error) bool) {
	conn, resp, err := s.dialer.DialContext(ctx, rawURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		yield(nil, err)
		return
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			yield(nil, err)
			return
		}

		// A message may carry several lines.
		for line := range bytes.SplitSeq(msg, []byte("\n")) {
			line = bytes.TrimRight(line, "\r")
			if len(line) == 0 {
				continue
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

func fileLines(path string, yield func([]byte, error) bool) {
	// #nosec G304 -- path is configured by the operator
	f, err := os.Open(path)
	if err != nil {
		yield(nil, err)
		return
	}
	defer func() { _ = f.Close() }()

	readLines(f, yield)
}

// readLines yields r line by line without a line length limit.
func readLines(r io.Reader, yield func([]byte, error) bool) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if !yield(bytes.TrimRight(line, "\r\n"), nil) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, err)
			return
		}
	}
}
