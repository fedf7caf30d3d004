package app

import (
	"context"
	"fmt"

	"go.trai.ch/grove/internal/adapters/server"  //nolint:depguard // Wired in app layer
	"go.trai.ch/grove/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"golang.org/x/sync/errgroup"
)

// DevelopOptions configure Develop.
type DevelopOptions struct {
	// NoWatch disables re-sourcing on file changes.
	NoWatch bool
}

// Develop sources nodes once, then serves the develop endpoints and
// re-sources whenever files change or the refresh endpoint is called.
func (a *App) Develop(ctx context.Context, opts DevelopOptions) error {
	if err := a.Refresh(ctx, nil); err != nil {
		return err
	}

	srv := server.New(a.cfg.Server, a.store, a, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if !opts.NoWatch {
		if err := a.watcher.Start(gctx, a.cfg.Root); err != nil {
			return err
		}

		debouncer := watcher.NewDebouncer(a.cfg.Watch.Debounce, func(paths []string) {
			a.logger.Debug(fmt.Sprintf("%d files changed", len(paths)))
			if err := a.Refresh(gctx, map[string]any{"changedPaths": paths}); err != nil {
				a.logger.Error(err)
			}
		})

		g.Go(func() error {
			for event := range a.watcher.Events() {
				debouncer.Add(event.Path)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			debouncer.Stop()
			return a.watcher.Stop()
		})
	}

	return g.Wait()
}
