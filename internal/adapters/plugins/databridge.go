package plugins

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// Node types created by the data bridge.
const (
	SiteType       = "Site"
	SitePluginType = "SitePlugin"
)

// dataBridge exposes the site and its plugins as nodes.
type dataBridge struct {
	siteName string
	plugins  []*domain.Plugin
}

func newDataBridge(siteName string, plugins []*domain.Plugin) *dataBridge {
	return &dataBridge{siteName: siteName, plugins: plugins}
}

func (b *dataBridge) SourceNodes(ctx context.Context, args ports.SourceArgs) error {
	site, err := newNode(DataBridgePlugin, SiteType, SiteType, map[string]any{
		"siteMetadata": map[string]any{"title": b.siteName},
	})
	if err != nil {
		return err
	}
	if err := args.Actions.CreateNode(ctx, site); err != nil {
		return err
	}

	for _, p := range b.plugins {
		fields := map[string]any{
			"name":     p.Name,
			"version":  p.Version,
			"resolve":  p.Resolve,
			"nodeAPIs": p.NodeAPIs,
		}
		if len(p.Options) > 0 {
			fields["pluginOptions"] = p.Options
		}
		node, err := newNode(DataBridgePlugin, SitePluginType, SitePluginType+":"+p.Name, fields)
		if err != nil {
			return err
		}
		if err := args.Actions.CreateNode(ctx, node); err != nil {
			return err
		}
	}
	return nil
}

// newNode builds a node with a stable id and a digest of its fields.
func newNode(pluginName, typeName, key string, fields map[string]any) (*domain.Node, error) {
	digest, err := domain.ContentDigest(fields)
	if err != nil {
		return nil, err
	}
	return &domain.Node{
		ID: domain.CreateNodeID(pluginName, key),
		Internal: domain.NodeInternal{
			Type:          typeName,
			ContentDigest: digest,
		},
		Fields: fields,
	}, nil
}
