// Package apirunner invokes plugin lifecycle hooks and joins the work they spawn.
package apirunner

import (
	"context"
	"fmt"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.APIRunner = (*Runner)(nil)

// Runner implements ports.APIRunner. Plugins run one at a time in load order.
type Runner struct {
	registry   ports.PluginRegistry
	dispatcher ports.Dispatcher
	store      ports.NodeStore
	logger     ports.Logger
}

// NewRunner creates a Runner.
func NewRunner(
	registry ports.PluginRegistry,
	dispatcher ports.Dispatcher,
	store ports.NodeStore,
	logger ports.Logger,
) *Runner {
	return &Runner{
		registry:   registry,
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
	}
}

// Run invokes api on every plugin implementing it, or only on opts.PluginName.
// Each plugin's hook and all of its cascading work finish before the next
// plugin starts. The first failure stops the run.
func (r *Runner) Run(ctx context.Context, api string, opts domain.HookOptions) error {
	if opts.WebhookBody == nil {
		opts.WebhookBody = map[string]any{}
	}

	for _, plugin := range r.registry.Plugins() {
		if opts.PluginName != "" && plugin.Name != opts.PluginName {
			continue
		}
		if !plugin.Implements(api) {
			continue
		}
		if err := r.runPlugin(ctx, api, plugin, opts); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runPlugin(ctx context.Context, api string, plugin *domain.Plugin, opts domain.HookOptions) error {
	sourcer, ok := r.registry.Sourcer(plugin.Name)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnknownPlugin, "plugin has no "+api+" implementation"), "plugin", plugin.Name)
	}

	r.logger.Debug(fmt.Sprintf("[%s] running %s for %s", opts.TraceID, api, plugin.Name))

	g, gctx := errgroup.WithContext(ctx)
	actions := newActions(gctx, r, plugin, g, opts.DeferNodeMutation)

	hookErr := sourcer.SourceNodes(gctx, ports.SourceArgs{
		Actions: actions,
		Plugin:  plugin,
		Hook:    opts,
		Logger:  r.logger,
	})
	// Cascading work is always joined, even when the hook itself failed.
	waitErr := g.Wait()

	if hookErr != nil {
		return hookError(hookErr, api, plugin)
	}
	if waitErr != nil {
		return hookError(waitErr, api, plugin)
	}

	return actions.flush(ctx)
}

func hookError(err error, api string, plugin *domain.Plugin) error {
	wrapped := zerr.Wrap(err, domain.ErrHookFailed.Error())
	wrapped = zerr.With(wrapped, "api", api)
	return zerr.With(wrapped, "plugin", plugin.Name)
}
