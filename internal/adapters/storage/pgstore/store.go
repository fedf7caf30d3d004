// Package pgstore implements the node store on PostgreSQL.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"iter"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.NodeStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS grove_nodes (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	owner      TEXT NOT NULL,
	parent     TEXT NOT NULL DEFAULT '',
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS grove_nodes_type_idx ON grove_nodes (type);
`

// Store is a ports.NodeStore backed by a grove_nodes table.
// Writes are committed immediately, so Ready only checks the connection.
type Store struct {
	db    *sql.DB
	cache *lru.Cache[string, *domain.Node]
}

// Open connects to dsn and creates the schema if needed.
func Open(ctx context.Context, dsn string, cacheSize int) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}

	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, *domain.Node](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}

	return &Store{db: db, cache: cache}, nil
}

// GetNode returns the node with the given id, or nil if it does not exist.
func (s *Store) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	if node, ok := s.cache.Get(id); ok {
		return node, nil
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM grove_nodes WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "node_id", id)
	}

	node, err := decode(data)
	if err != nil {
		return nil, zerr.With(err, "node_id", id)
	}
	s.cache.Add(id, node)
	return node, nil
}

// IterateNodes yields every node ordered by id.
func (s *Store) IterateNodes(ctx context.Context) iter.Seq2[*domain.Node, error] {
	return func(yield func(*domain.Node, error) bool) {
		rows, err := s.db.QueryContext(ctx, `SELECT data FROM grove_nodes ORDER BY id`)
		if err != nil {
			yield(nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error()))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var data []byte
			if err := rows.Scan(&data); err != nil {
				yield(nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error()))
				return
			}
			node, err := decode(data)
			if !yield(node, err) || err != nil {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error()))
		}
	}
}

// Upsert creates or replaces a node.
func (s *Store) Upsert(ctx context.Context, node *domain.Node) error {
	data, err := json.Marshal(node)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "node_id", node.ID)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO grove_nodes (id, type, owner, parent, data, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (id) DO UPDATE SET
	type = EXCLUDED.type,
	owner = EXCLUDED.owner,
	parent = EXCLUDED.parent,
	data = EXCLUDED.data,
	updated_at = now()`,
		node.ID, node.Type(), node.Owner(), node.Parent, data,
	)
	if err != nil {
		s.cache.Remove(node.ID)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "node_id", node.ID)
	}

	s.cache.Add(node.ID, node)
	return nil
}

// Delete removes a node.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.cache.Remove(id)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM grove_nodes WHERE id = $1`, id); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "node_id", id)
	}
	return nil
}

// Ready checks that the database is reachable.
func (s *Store) Ready(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset removes every node. Used by clean.
func (s *Store) Reset(ctx context.Context) error {
	s.cache.Purge()
	if _, err := s.db.ExecContext(ctx, `TRUNCATE grove_nodes`); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func decode(data []byte) (*domain.Node, error) {
	var node domain.Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return &node, nil
}
