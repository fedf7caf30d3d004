// Package plugins loads the configured plugins and their built-in implementations.
package plugins

import (
	"context"
	"slices"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PluginRegistry = (*Registry)(nil)

// Built-in plugin names.
const (
	DataBridgePlugin = "internal-data-bridge"
	FilesystemPlugin = "grove-source-filesystem"
	JSONPlugin       = "grove-source-json"
	ExecPlugin       = "grove-source-exec"
)

// Factory builds the sourceNodes implementation of one configured plugin instance.
type Factory func(plugin *domain.Plugin, cfg *domain.Config) (ports.NodeSourcer, error)

// Builtins maps plugin names to their implementation.
var Builtins = map[string]Factory{
	FilesystemPlugin: newFilesystemSource,
	JSONPlugin:       newJSONSource,
	ExecPlugin:       newExecSource,
}

// Registry holds loaded plugins in load order: the data bridge first, then the
// configured plugins, then the default site plugin.
//
// A plugin configured more than once is listed once; each instance runs in
// configuration order when its sourceNodes hook is invoked.
type Registry struct {
	plugins  []*domain.Plugin
	sourcers map[string]ports.NodeSourcer
}

// NewRegistry loads the plugins listed in cfg using factories.
func NewRegistry(cfg *domain.Config, factories map[string]Factory) (*Registry, error) {
	r := &Registry{sourcers: make(map[string]ports.NodeSourcer)}

	instances := make(map[string]multiSourcer)
	var order []*domain.Plugin
	for i := range cfg.Plugins {
		plugin := cfg.Plugins[i]
		plugin.NodeAPIs = []string{domain.SourceNodesAPI}

		factory, ok := factories[plugin.Name]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownPlugin, "cannot load plugin"), "plugin", plugin.Name)
		}
		sourcer, err := factory(&plugin, cfg)
		if err != nil {
			return nil, zerr.With(err, "plugin", plugin.Name)
		}

		if _, seen := instances[plugin.Name]; !seen {
			order = append(order, &plugin)
		}
		instances[plugin.Name] = append(instances[plugin.Name], sourcer)
	}

	bridge := &domain.Plugin{Name: DataBridgePlugin, Version: "1.0.0", NodeAPIs: []string{domain.SourceNodesAPI}}
	site := &domain.Plugin{Name: domain.DefaultSitePlugin, Version: "1.0.0", NodeAPIs: []string{domain.SourceNodesAPI}}

	r.plugins = append(r.plugins, bridge)
	r.plugins = append(r.plugins, order...)
	r.plugins = append(r.plugins, site)

	for name, sourcer := range instances {
		if len(sourcer) == 1 {
			r.sourcers[name] = sourcer[0]
			continue
		}
		r.sourcers[name] = sourcer
	}
	r.sourcers[DataBridgePlugin] = newDataBridge(cfg.SiteName, r.plugins)
	r.sourcers[domain.DefaultSitePlugin] = siteSource{}
	return r, nil
}

// Plugins implements ports.PluginRegistry.
func (r *Registry) Plugins() []*domain.Plugin {
	return slices.Clone(r.plugins)
}

// Sourcer implements ports.PluginRegistry.
func (r *Registry) Sourcer(name string) (ports.NodeSourcer, bool) {
	s, ok := r.sourcers[name]
	return s, ok
}

// multiSourcer runs several instances of the same plugin one after another.
type multiSourcer []ports.NodeSourcer

func (m multiSourcer) SourceNodes(ctx context.Context, args ports.SourceArgs) error {
	for _, s := range m {
		if err := s.SourceNodes(ctx, args); err != nil {
			return err
		}
	}
	return nil
}

// siteSource stands in for the site's own sourceNodes hook, which creates nothing.
type siteSource struct{}

func (siteSource) SourceNodes(context.Context, ports.SourceArgs) error {
	return nil
}
