package sourcing_test

import (
	"context"
	"iter"
	"slices"
	"sync"
	"testing"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// mapStore is a NodeStore backed by a map.
type mapStore struct {
	mu    sync.Mutex
	nodes map[string]*domain.Node
	ready int
}

func newMapStore(nodes ...*domain.Node) *mapStore {
	s := &mapStore{nodes: make(map[string]*domain.Node)}
	for _, n := range nodes {
		s.nodes[n.ID] = n
	}
	return s
}

func (s *mapStore) GetNode(_ context.Context, id string) (*domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[id], nil
}

func (s *mapStore) IterateNodes(context.Context) iter.Seq2[*domain.Node, error] {
	s.mu.Lock()
	ids := slices.Sorted(func(yield func(string) bool) {
		for id := range s.nodes {
			if !yield(id) {
				return
			}
		}
	})
	nodes := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, s.nodes[id])
	}
	s.mu.Unlock()

	return func(yield func(*domain.Node, error) bool) {
		for _, n := range nodes {
			if !yield(n, nil) {
				return
			}
		}
	}
}

func (s *mapStore) Upsert(_ context.Context, node *domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node.ID] = node
	return nil
}

func (s *mapStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, id)
	return nil
}

func (s *mapStore) Ready(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready++
	return nil
}

func (s *mapStore) Close() error { return nil }

func (s *mapStore) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(func(yield func(string) bool) {
		for id := range s.nodes {
			if !yield(id) {
				return
			}
		}
	})
}

// registry is a PluginRegistry over a fixed plugin list.
type registry struct {
	plugins  []*domain.Plugin
	sourcers map[string]ports.NodeSourcer
}

func (r *registry) Plugins() []*domain.Plugin { return r.plugins }

func (r *registry) Sourcer(name string) (ports.NodeSourcer, bool) {
	s, ok := r.sourcers[name]
	return s, ok
}

type sourcerFunc func(ctx context.Context, args ports.SourceArgs) error

func (f sourcerFunc) SourceNodes(ctx context.Context, args ports.SourceArgs) error {
	return f(ctx, args)
}

// recordingLogger keeps every message it receives.
type recordingLogger struct {
	mu     sync.Mutex
	warns  []string
	errors []error
}

func (l *recordingLogger) Debug(string) {}
func (l *recordingLogger) Info(string)  {}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.warns)
}

func noopTracer(t *testing.T) ports.Tracer {
	t.Helper()
	ctrl := gomock.NewController(t)
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	return tracer
}
