// Package app implements the application layer for grove.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/sourcing"
	"go.trai.ch/zerr"
)

// Sourcer runs sourcing cycles.
type Sourcer interface {
	TraceID() string
	RunSourcingCycle(ctx context.Context, opts sourcing.RunOptions) error
}

// ActionLog exposes the recent node actions.
type ActionLog interface {
	Actions() []domain.Action
}

// App represents the main application logic.
type App struct {
	cfg       *domain.Config
	sourcer   Sourcer
	actions   ActionLog
	store     ports.NodeStore
	state     *domain.State
	snapshots ports.SnapshotWriter
	watcher   ports.Watcher
	logger    ports.Logger
	tracer    ports.Tracer

	out io.Writer
	now func() time.Time
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	sourcer Sourcer,
	actions ActionLog,
	store ports.NodeStore,
	state *domain.State,
	snapshots ports.SnapshotWriter,
	watcher ports.Watcher,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		cfg:       cfg,
		sourcer:   sourcer,
		actions:   actions,
		store:     store,
		state:     state,
		snapshots: snapshots,
		watcher:   watcher,
		logger:    logger,
		tracer:    tracer,
		out:       os.Stdout,
		now:       time.Now,
	}
}

// WithOutput sets where command output is printed.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// SetLogOptions configures the logger when it supports it.
func (a *App) SetLogOptions(verbose, json bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(json || a.cfg.Log.JSON)
	}
}

// BuildOptions configure Build.
type BuildOptions struct {
	// PluginName restricts sourcing to one plugin.
	PluginName string
	// DeferNodeMutation queues node actions until each plugin's hook finishes.
	DeferNodeMutation bool
	// NoSnapshot skips writing the node graph snapshot.
	NoSnapshot bool
}

// Build runs one sourcing cycle, writes a snapshot and prints a summary.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	start := a.now()
	traceID := a.sourcer.TraceID()

	err := a.sourcer.RunSourcingCycle(ctx, sourcing.RunOptions{
		PluginName:        opts.PluginName,
		DeferNodeMutation: opts.DeferNodeMutation,
	})
	if err != nil {
		return err
	}

	nodes, err := a.collectNodes(ctx, "")
	if err != nil {
		return err
	}

	if !opts.NoSnapshot {
		location, err := a.snapshots.Write(ctx, &domain.Snapshot{
			TraceID:    traceID,
			CreatedAt:  a.now().UTC(),
			TypeOwners: a.state.TypeOwners().Snapshot(),
			Nodes:      nodes,
		})
		if err != nil {
			return err
		}
		if location != "" {
			a.logger.Info("snapshot written to " + location)
		}
	}

	a.printSummary(nodes, a.actions.Actions(), a.now().Sub(start))
	return nil
}

// Refresh re-sources nodes, forwarding body to every plugin.
func (a *App) Refresh(ctx context.Context, body map[string]any) error {
	a.logger.Info("refreshing source nodes")
	return a.sourcer.RunSourcingCycle(ctx, sourcing.RunOptions{WebhookBody: body})
}

// Nodes prints the stored nodes, optionally only those of one type.
func (a *App) Nodes(ctx context.Context, typeName string) error {
	nodes, err := a.collectNodes(ctx, typeName)
	if err != nil {
		return err
	}
	a.printNodes(nodes)
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Store     bool
	Snapshots bool
}

// resetter is implemented by stores that do not live in a directory.
type resetter interface {
	Reset(ctx context.Context) error
}

// Clean removes the node store and snapshots based on the provided options.
func (a *App) Clean(ctx context.Context, options CleanOptions) error {
	var errs error

	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Store {
		if r, ok := a.store.(resetter); ok {
			a.logger.Info("resetting node store...")
			if err := r.Reset(ctx); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if err := a.store.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
		if a.cfg.Store.Driver == domain.StoreDriverBadger {
			remove(a.cfg.Store.Path, "node store")
		}
	}

	if options.Snapshots && a.cfg.Snapshot.Driver == domain.SnapshotDriverFile {
		remove(a.cfg.Snapshot.Path, "snapshots")
	}

	return errs
}

// Close flushes and releases the node store and the tracer.
func (a *App) Close(ctx context.Context) error {
	err := a.store.Close()
	if s, ok := a.tracer.(interface{ Shutdown(context.Context) error }); ok {
		err = errors.Join(err, s.Shutdown(ctx))
	}
	return err
}

func (a *App) collectNodes(ctx context.Context, typeName string) ([]*domain.Node, error) {
	var nodes []*domain.Node
	for node, err := range a.store.IterateNodes(ctx) {
		if err != nil {
			return nil, err
		}
		if typeName == "" || node.Type() == typeName {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}
