package domain

import "slices"

const (
	// SourceNodesAPI is the lifecycle hook source plugins implement to create nodes.
	SourceNodesAPI = "sourceNodes"

	// DefaultSitePlugin is the implicit plugin representing the site itself.
	// It is never reported as having produced no nodes.
	DefaultSitePlugin = "default-site-plugin"
)

// Plugin describes a loaded plugin. Ownership identity is the name only.
type Plugin struct {
	Name     string         `json:"name" yaml:"name" validate:"required"`
	Version  string         `json:"version,omitempty" yaml:"version"`
	Resolve  string         `json:"resolve,omitempty" yaml:"resolve"`
	NodeAPIs []string       `json:"nodeAPIs,omitempty" yaml:"nodeAPIs"`
	Options  map[string]any `json:"pluginOptions,omitempty" yaml:"options"`
}

// Implements reports whether the plugin exports the given lifecycle hook.
func (p *Plugin) Implements(api string) bool {
	return p != nil && slices.Contains(p.NodeAPIs, api)
}

// PluginNamed returns a minimal plugin descriptor carrying only a name.
// It is used when a node's owner has to act as the plugin, e.g. when touching
// nodes on behalf of the plugin that created them.
func PluginNamed(name string) *Plugin {
	return &Plugin{Name: name}
}
