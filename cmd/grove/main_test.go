package main

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/grove/internal/app"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.trai.ch/grove/internal/engine/sourcing"
	"go.uber.org/mock/gomock"
)

type stubSourcer struct{ err error }

func (stubSourcer) TraceID() string { return "initial-sourceNodes" }

func (s stubSourcer) RunSourcingCycle(context.Context, sourcing.RunOptions) error { return s.err }

type noActions struct{}

func (noActions) Actions() []domain.Action { return nil }

func emptyStore() iter.Seq2[*domain.Node, error] {
	return func(func(*domain.Node, error) bool) {}
}

func newComponents(t *testing.T, sourceErr error) (*app.Components, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	store := mocks.NewMockNodeStore(ctrl)
	store.EXPECT().IterateNodes(gomock.Any()).Return(emptyStore()).AnyTimes()
	store.EXPECT().Close().Return(nil)

	cfg := &domain.Config{Root: t.TempDir()}
	a := app.New(cfg, stubSourcer{err: sourceErr}, noActions{}, store, domain.NewState(), nil, nil, logger, nil)
	return &app.Components{App: a, Logger: logger}, logger
}

func TestRun_Success(t *testing.T) {
	components, _ := newComponents(t, nil)
	provider := func(context.Context) (*app.Components, error) { return components, nil }

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build", "--no-snapshot"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "sourced 0 nodes")
}

func TestRun_VersionSkipsInitialization(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		t.Fatal("components must not be resolved")
		return nil, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "grove version")
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"nodes"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ExecutionError(t *testing.T) {
	components, logger := newComponents(t, domain.ErrSourcingFailed)
	logger.EXPECT().Error(domain.ErrSourcingFailed).Times(1)
	provider := func(context.Context) (*app.Components, error) { return components, nil }

	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
