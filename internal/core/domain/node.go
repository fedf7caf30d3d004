package domain

import (
	"encoding/json"
	"maps"
)

// Reserved top-level keys of a serialized node.
const (
	fieldID       = "id"
	fieldParent   = "parent"
	fieldInternal = "internal"
)

// NodeInternal holds the bookkeeping fields every node carries.
type NodeInternal struct {
	Type          string `json:"type" validate:"required"`
	Owner         string `json:"owner,omitempty"`
	ContentDigest string `json:"contentDigest,omitempty"`
	MediaType     string `json:"mediaType,omitempty"`
	Content       string `json:"content,omitempty"`
	Description   string `json:"description,omitempty"`
}

// Node is a record in the content graph.
//
// Fields holds plugin-defined data. It is serialized inline next to id, parent and
// internal so that a node looks the same on disk as it does on the ingestion wire.
type Node struct {
	ID       string         `validate:"required"`
	Parent   string
	Internal NodeInternal
	Fields   map[string]any `validate:"-"`
}

// Type returns the node's type name.
func (n *Node) Type() string {
	return n.Internal.Type
}

// Owner returns the name of the plugin that owns the node.
func (n *Node) Owner() string {
	return n.Internal.Owner
}

// Clone returns a copy of the node with an independent top-level field map.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Fields = maps.Clone(n.Fields)
	return &c
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Fields)+3)
	for k, v := range n.Fields {
		out[k] = v
	}
	out[fieldID] = n.ID
	if n.Parent != "" {
		out[fieldParent] = n.Parent
	} else {
		out[fieldParent] = nil
	}
	out[fieldInternal] = n.Internal
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Node
	if v, ok := raw[fieldID]; ok {
		if err := json.Unmarshal(v, &decoded.ID); err != nil {
			return err
		}
	}
	if v, ok := raw[fieldParent]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &decoded.Parent); err != nil {
			return err
		}
	}
	if v, ok := raw[fieldInternal]; ok {
		if err := json.Unmarshal(v, &decoded.Internal); err != nil {
			return err
		}
	}

	delete(raw, fieldID)
	delete(raw, fieldParent)
	delete(raw, fieldInternal)

	if len(raw) > 0 {
		decoded.Fields = make(map[string]any, len(raw))
		for k, v := range raw {
			var value any
			if err := json.Unmarshal(v, &value); err != nil {
				return err
			}
			decoded.Fields[k] = value
		}
	}

	*n = decoded
	return nil
}
