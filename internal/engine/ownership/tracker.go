// Package ownership enforces that every node type has a single owning plugin
// and that nodes are only mutated by the plugin that owns them.
package ownership

import (
	"encoding/json"
	"fmt"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// Tracker checks node actions against the type ownership mapping.
// It is not safe for concurrent use; callers serialize actions.
type Tracker struct {
	owners *domain.TypeOwners
}

// NewTracker creates a Tracker over the given ownership mapping.
func NewTracker(owners *domain.TypeOwners) *Tracker {
	return &Tracker{owners: owners}
}

// Owners returns the underlying ownership mapping.
func (t *Tracker) Owners() *domain.TypeOwners {
	return t.owners
}

// RecordTypeOwnership records plugin as the owner of typeName.
// Re-recording the same pair is a no-op. If the type already belongs to a
// different plugin, the mapping is left unchanged and an error is returned.
// node is optional and only used to enrich the error.
func (t *Tracker) RecordTypeOwnership(typeName string, plugin *domain.Plugin, node *domain.Node) error {
	if plugin == nil {
		return zerr.With(zerr.Wrap(domain.ErrPluginRequired, "cannot record type ownership"), "type", typeName)
	}

	if t.owners.Claim(typeName, plugin.Name) {
		return nil
	}

	owner, _ := t.owners.OwnerOf(typeName)
	err := zerr.Wrap(domain.ErrOwnershipConflict, fmt.Sprintf(
		"the plugin %q created a node of a type owned by another plugin.\n"+
			"The node type %q is owned by %q.\n"+
			"The node object passed to createNode must set internal.type to a type the plugin owns",
		plugin.Name, typeName, owner,
	))
	err = zerr.With(err, "type", typeName)
	err = zerr.With(err, "plugin", plugin.Name)
	err = zerr.With(err, "owner", owner)
	if node != nil {
		err = zerr.With(err, "node", encode(node))
	}
	return zerr.With(err, "plugin_descriptor", encode(plugin))
}

// HandleNodeCreate checks a create or update of newNode by plugin.
// oldNode is the currently stored node with the same id, if any.
func (t *Tracker) HandleNodeCreate(oldNode, newNode *domain.Node, plugin *domain.Plugin) error {
	if err := t.RecordTypeOwnership(newNode.Type(), plugin, newNode); err != nil {
		return err
	}

	if oldNode != nil && oldNode.Owner() != newNode.Owner() {
		err := zerr.Wrap(domain.ErrOwnershipViolation, fmt.Sprintf(
			"the plugin %q tried to update node %q owned by %q",
			plugin.Name, newNode.ID, oldNode.Owner(),
		))
		err = zerr.With(err, "node_id", newNode.ID)
		err = zerr.With(err, "owner", oldNode.Owner())
		return zerr.With(err, "plugin", plugin.Name)
	}

	return nil
}

// HandleNodeTouch checks a touch of a node of typeName by plugin.
func (t *Tracker) HandleNodeTouch(typeName string, plugin *domain.Plugin) error {
	return t.RecordTypeOwnership(typeName, plugin, nil)
}

// HandleNodeDelete checks a delete of node by plugin.
// A nil plugin is the system itself and may delete anything.
func (t *Tracker) HandleNodeDelete(node *domain.Node, plugin *domain.Plugin) error {
	if plugin == nil {
		return nil
	}

	owner, ok := t.owners.OwnerOf(node.Type())
	if !ok || owner == plugin.Name {
		return nil
	}

	err := zerr.Wrap(domain.ErrOwnershipViolation, fmt.Sprintf(
		"the plugin %q deleted a node of a type owned by another plugin.\n"+
			"The node type %q is owned by %q",
		plugin.Name, node.Type(), owner,
	))
	err = zerr.With(err, "type", node.Type())
	err = zerr.With(err, "plugin", plugin.Name)
	err = zerr.With(err, "owner", owner)
	err = zerr.With(err, "node", encode(node))
	return zerr.With(err, "plugin_descriptor", encode(plugin))
}

func encode(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
