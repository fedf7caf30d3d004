// Package kvstore implements the node store on BadgerDB.
//
// Writes land in an in-memory pending set and are committed to Badger in
// batches, either by the background flusher or by Ready. Reads always see
// pending writes. Decoded nodes are kept in an LRU cache.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.NodeStore = (*Store)(nil)

var keyPrefix = []byte("node/")

// Options configure a Store.
type Options struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// CacheSize is the number of decoded nodes kept in memory.
	CacheSize int
	// FlushInterval is how often pending writes are committed in the
	// background. Zero disables the background flusher.
	FlushInterval time.Duration
}

// Store is a ports.NodeStore backed by BadgerDB.
type Store struct {
	db     *badger.DB
	cache  *lru.Cache[string, *domain.Node]
	logger ports.Logger

	mu       sync.RWMutex
	pending  map[string]*domain.Node // nil marks a delete
	inflight map[string]*domain.Node

	flushMu sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	closed  sync.Once
}

// Open opens or creates a Store.
func Open(opts Options, logger ports.Logger) (*Store, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, zerr.Wrap(domain.ErrStoreOpenFailed, "path is required for a persistent store")
		}
		if err := os.MkdirAll(opts.Path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", opts.Path)
		}
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts = bopts.
		WithSyncWrites(opts.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", opts.Path)
	}

	size := opts.CacheSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, *domain.Node](size)
	if err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}

	s := &Store{
		db:      db,
		cache:   cache,
		logger:  logger,
		pending: make(map[string]*domain.Node),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if opts.FlushInterval > 0 {
		go s.flushLoop(opts.FlushInterval)
	} else {
		close(s.done)
	}

	return s, nil
}

// GetNode returns the node with the given id, or nil if it does not exist.
func (s *Store) GetNode(_ context.Context, id string) (*domain.Node, error) {
	s.mu.RLock()
	if node, ok := s.pending[id]; ok {
		s.mu.RUnlock()
		return node, nil
	}
	if node, ok := s.inflight[id]; ok {
		s.mu.RUnlock()
		return node, nil
	}
	s.mu.RUnlock()

	if node, ok := s.cache.Get(id); ok {
		return node, nil
	}

	var node *domain.Node
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nodeKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			node, err = decode(val)
			return err
		})
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "node_id", id)
	}

	if node != nil {
		s.cache.Add(id, node)
	}
	return node, nil
}

// IterateNodes yields every node ordered by id, including pending writes.
func (s *Store) IterateNodes(_ context.Context) iter.Seq2[*domain.Node, error] {
	return func(yield func(*domain.Node, error) bool) {
		nodes, err := s.snapshot()
		if err != nil {
			yield(nil, err)
			return
		}

		for _, id := range slices.Sorted(maps.Keys(nodes)) {
			if !yield(nodes[id], nil) {
				return
			}
		}
	}
}

// snapshot returns committed nodes merged with pending writes. Holding
// flushMu keeps a concurrent commit from moving writes between the two reads.
func (s *Store) snapshot() (map[string]*domain.Node, error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	nodes := make(map[string]*domain.Node)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				node, err := decode(val)
				if err != nil {
					return err
				}
				nodes[node.ID] = node
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, node := range s.pending {
		if node == nil {
			delete(nodes, id)
			continue
		}
		nodes[id] = node
	}
	return nodes, nil
}

// Upsert creates or replaces a node.
func (s *Store) Upsert(_ context.Context, node *domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[node.ID] = node
	s.cache.Add(node.ID, node)
	return nil
}

// Delete removes a node.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = nil
	s.cache.Remove(id)
	return nil
}

// Ready commits every pending write.
func (s *Store) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.flush()
}

// Close stops the background flusher, commits pending writes and closes Badger.
func (s *Store) Close() error {
	var err error
	s.closed.Do(func() {
		close(s.stop)
		<-s.done
		err = errors.Join(s.flush(), s.db.Close())
	})
	return err
}

func (s *Store) flushLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.flush(); err != nil {
				s.logger.Error(err)
			}
		}
	}
}

func (s *Store) flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	batch := s.pending
	if len(batch) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.pending = make(map[string]*domain.Node)
	s.inflight = batch
	s.mu.Unlock()

	err := s.commit(batch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = nil
	if err != nil {
		// Keep the batch for the next flush unless it was superseded.
		for id, node := range batch {
			if _, ok := s.pending[id]; !ok {
				s.pending[id] = node
			}
		}
		return err
	}
	return nil
}

func (s *Store) commit(batch map[string]*domain.Node) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for id, node := range batch {
		if node == nil {
			if err := wb.Delete(nodeKey(id)); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "node_id", id)
			}
			continue
		}

		data, err := json.Marshal(node)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "node_id", id)
		}
		if err := wb.Set(nodeKey(id), data); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "node_id", id)
		}
	}

	if err := wb.Flush(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func nodeKey(id string) []byte {
	return append(slices.Clone(keyPrefix), id...)
}

func decode(data []byte) (*domain.Node, error) {
	var node domain.Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return &node, nil
}

// badgerLogger adapts ports.Logger to Badger's logger interface.
type badgerLogger struct {
	logger ports.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(errors.New(badgerMessage(format, args)))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(badgerMessage(format, args))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(badgerMessage(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(badgerMessage(format, args))
}

func badgerMessage(format string, args []any) string {
	return "badger: " + strings.TrimSpace(fmt.Sprintf(format, args...))
}
