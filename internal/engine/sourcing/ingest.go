package sourcing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// runIngestion sources nodes from a streamed event feed instead of plugins.
//
// Nodes of plugins that are fed by the stream are touched up front so the
// sweep keeps them; the stream then creates and deletes nodes; finally the
// always-run plugins source their own nodes.
func (c *Coordinator) runIngestion(ctx context.Context, url string, hook domain.HookOptions) error {
	if err := c.touchStreamedNodes(ctx); err != nil {
		return err
	}

	for line, err := range c.ingest.Lines(ctx, url) {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrIngestionStreamFailed.Error()), "url", url)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if err := c.applyLine(ctx, line); err != nil {
			if errors.Is(err, domain.ErrMalformedIngestionLine) {
				ingestionLines.WithLabelValues("malformed").Inc()
				c.logger.Error(err)
				continue
			}
			return err
		}
		ingestionLines.WithLabelValues("applied").Inc()
	}

	return c.runAlwaysRunPlugins(ctx, hook)
}

// touchStreamedNodes touches every stored node owned by a source plugin that
// does not run in ingestion mode.
func (c *Coordinator) touchStreamedNodes(ctx context.Context) error {
	streamed := make(map[string]struct{})
	for _, p := range c.registry.Plugins() {
		if p.Implements(domain.SourceNodesAPI) && !c.isAlwaysRun(p.Name) {
			streamed[p.Name] = struct{}{}
		}
	}

	var nodes []*domain.Node
	for node, err := range c.store.IterateNodes(ctx) {
		if err != nil {
			return err
		}
		if _, ok := streamed[node.Owner()]; ok {
			nodes = append(nodes, node)
		}
	}

	for _, node := range nodes {
		if err := c.dispatcher.TouchNode(ctx, node, domain.PluginNamed(node.Owner())); err != nil {
			return err
		}
	}
	return nil
}

// applyLine decodes one stream line and applies it.
func (c *Coordinator) applyLine(ctx context.Context, line []byte) error {
	var event domain.IngestEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return malformed(err, line)
	}
	if err := c.validate.Struct(&event); err != nil {
		return malformed(err, line)
	}

	switch event.Type {
	case domain.ActionCreateNode:
		return c.dispatcher.CreateNode(ctx, event.Node, event.Plugin)
	case domain.ActionDeleteNode:
		return c.dispatcher.DeleteNode(ctx, event.Node, event.Plugin)
	default:
		return malformed(fmt.Errorf("unsupported event type %q", event.Type), line)
	}
}

// runAlwaysRunPlugins runs the sourceNodes hook of every always-run plugin
// and reports the plugins skipped in ingestion mode.
func (c *Coordinator) runAlwaysRunPlugins(ctx context.Context, hook domain.HookOptions) error {
	for _, p := range c.registry.Plugins() {
		if !p.Implements(domain.SourceNodesAPI) {
			continue
		}
		if hook.PluginName != "" && hook.PluginName != p.Name {
			continue
		}
		if !c.isAlwaysRun(p.Name) {
			c.logger.Debug("[source-nodes] ignore " + p.Name)
			continue
		}

		pluginHook := hook
		pluginHook.PluginName = p.Name
		if err := c.runner.Run(ctx, domain.SourceNodesAPI, pluginHook); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) isAlwaysRun(name string) bool {
	return slices.Contains(c.alwaysRun, name)
}

func malformed(cause error, line []byte) error {
	err := zerr.Wrap(domain.ErrMalformedIngestionLine, cause.Error())
	return zerr.With(err, "line", string(line))
}
