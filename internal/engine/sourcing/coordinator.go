// Package sourcing runs sourcing cycles: it invokes every source plugin, waits
// for the node store to settle and, on the first cycle of the process,
// reconciles the graph by deleting nodes no plugin produced.
package sourcing

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

const initialTraceID = "initial-sourceNodes"

// RunOptions configure a single sourcing cycle.
type RunOptions struct {
	// WebhookBody is forwarded to every hook. Defaults to an empty object.
	WebhookBody map[string]any
	// PluginName restricts the cycle to one plugin.
	PluginName string
	// DeferNodeMutation queues node actions until each hook finishes.
	DeferNodeMutation bool
}

// Options configure a Coordinator.
type Options struct {
	// ToggleEnv names the environment variable that enables streaming
	// ingestion. Its value is the stream URL.
	ToggleEnv string
	// AlwaysRun lists source plugins that still run in ingestion mode.
	AlwaysRun []string
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Coordinator runs sourcing cycles. Cycles never overlap.
type Coordinator struct {
	runner     ports.APIRunner
	dispatcher ports.Dispatcher
	store      ports.NodeStore
	registry   ports.PluginRegistry
	ingest     ports.IngestionSource
	state      *domain.State
	tracer     ports.Tracer
	logger     ports.Logger
	validate   *validator.Validate

	toggleEnv string
	alwaysRun []string
	getenv    func(string) string

	mu sync.Mutex
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	runner ports.APIRunner,
	dispatcher ports.Dispatcher,
	store ports.NodeStore,
	registry ports.PluginRegistry,
	ingest ports.IngestionSource,
	state *domain.State,
	tracer ports.Tracer,
	logger ports.Logger,
	opts Options,
) *Coordinator {
	if opts.ToggleEnv == "" {
		opts.ToggleEnv = domain.DefaultIngestionToggle
	}
	if opts.AlwaysRun == nil {
		opts.AlwaysRun = domain.DefaultAlwaysRunPlugins
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	return &Coordinator{
		runner:     runner,
		dispatcher: dispatcher,
		store:      store,
		registry:   registry,
		ingest:     ingest,
		state:      state,
		tracer:     tracer,
		logger:     logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		toggleEnv:  opts.ToggleEnv,
		alwaysRun:  opts.AlwaysRun,
		getenv:     opts.Getenv,
	}
}

// TraceID returns the trace id the next cycle will use.
func (c *Coordinator) TraceID() string {
	if c.state.IsInitialSourcing() {
		return initialTraceID
	}
	return fmt.Sprintf("sourceNodes #%d", c.state.SourcingCount())
}

// RunSourcingCycle runs one sourcing cycle.
//
// Every source plugin runs and all cascading work is joined before the store
// readiness barrier. Only the first successful cycle of the process warns
// about plugins without nodes and deletes stale nodes.
func (c *Coordinator) RunSourcingCycle(ctx context.Context, opts RunOptions) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	traceID := c.TraceID()
	ctx, span := c.tracer.Start(ctx, traceID)
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			span.RecordError(err)
		}
		cycles.WithLabelValues(result).Inc()
		cycleDuration.Observe(time.Since(start).Seconds())
		span.End()
	}()

	webhookBody := opts.WebhookBody
	if webhookBody == nil {
		webhookBody = map[string]any{}
	}
	hook := domain.HookOptions{
		TraceID:           traceID,
		WebhookBody:       webhookBody,
		PluginName:        opts.PluginName,
		DeferNodeMutation: opts.DeferNodeMutation,
	}

	if url := c.getenv(c.toggleEnv); url != "" {
		span.SetAttribute("ingestion", true)
		err = c.runIngestion(ctx, url, hook)
	} else {
		err = c.runner.Run(ctx, domain.SourceNodesAPI, hook)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourcingFailed.Error()), "trace_id", traceID)
	}

	if err := c.store.Ready(ctx); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourcingFailed.Error()), "trace_id", traceID)
	}

	if c.state.IsInitialSourcing() {
		if err := c.reconcile(ctx); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSourcingFailed.Error()), "trace_id", traceID)
		}
		c.state.MarkSourced()
	}

	c.dispatcher.APIFinished(ctx, domain.SourceNodesAPI)
	c.state.IncrementSourcingCount()
	span.SetAttribute("touched_nodes", c.state.TouchedCount())
	return nil
}

// reconcile warns about idle source plugins and deletes stale nodes.
func (c *Coordinator) reconcile(ctx context.Context) error {
	if err := c.warnForPluginsWithoutNodes(ctx); err != nil {
		return err
	}
	return c.deleteStaleNodes(ctx)
}

// warnForPluginsWithoutNodes warns once for every source plugin that owns no stored node.
func (c *Coordinator) warnForPluginsWithoutNodes(ctx context.Context) error {
	owners := map[string]struct{}{domain.DefaultSitePlugin: {}}
	for node, err := range c.store.IterateNodes(ctx) {
		if err != nil {
			return err
		}
		owners[node.Owner()] = struct{}{}
	}

	for _, name := range pluginsWithoutNodes(c.registry.Plugins(), owners) {
		c.logger.Warn(fmt.Sprintf(
			"The %s plugin has generated no nodes. Do you need it? This could also suggest the plugin is misconfigured.",
			name,
		))
	}
	return nil
}

// pluginsWithoutNodes returns the source plugins not present in owners, in load order.
func pluginsWithoutNodes(plugins []*domain.Plugin, owners map[string]struct{}) []string {
	var names []string
	for _, p := range plugins {
		if !p.Implements(domain.SourceNodesAPI) {
			continue
		}
		if _, ok := owners[p.Name]; ok {
			continue
		}
		if slices.Contains(names, p.Name) {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

// deleteStaleNodes deletes, as the system actor, every node whose root is untouched.
func (c *Coordinator) deleteStaleNodes(ctx context.Context) error {
	stale, err := StaleNodes(ctx, c.store, c.state.TouchedSnapshot(), c.logger)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	c.logger.Info(fmt.Sprintf("deleting %d stale nodes", len(stale)))
	for _, node := range stale {
		if err := c.dispatcher.DeleteNode(ctx, node, nil); err != nil {
			return err
		}
	}
	staleDeleted.Add(float64(len(stale)))
	return nil
}
