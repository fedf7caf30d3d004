package domain

import "slices"

// TypeOwners records which plugin owns which node type.
//
// A type is owned by at most one plugin and a claimed type is never reassigned.
// Both directions are kept so that callers can ask either question cheaply.
// TypeOwners is not safe for concurrent use; the dispatcher serializes access.
type TypeOwners struct {
	pluginsToTypes map[InternedString]map[InternedString]struct{}
	typesToPlugins map[InternedString]InternedString
}

// NewTypeOwners returns an empty ownership mapping.
func NewTypeOwners() *TypeOwners {
	return &TypeOwners{
		pluginsToTypes: make(map[InternedString]map[InternedString]struct{}),
		typesToPlugins: make(map[InternedString]InternedString),
	}
}

// OwnerOf returns the owner of the given type, if any.
func (o *TypeOwners) OwnerOf(typeName string) (string, bool) {
	owner, ok := o.typesToPlugins[NewInternedString(typeName)]
	if !ok {
		return "", false
	}
	return owner.String(), true
}

// TypesOf returns the types owned by the given plugin in sorted order.
func (o *TypeOwners) TypesOf(pluginName string) []string {
	set := o.pluginsToTypes[NewInternedString(pluginName)]
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t.String())
	}
	slices.Sort(types)
	return types
}

// Claim records pluginName as the owner of typeName.
// It reports false, and changes nothing, if the type is owned by another plugin.
func (o *TypeOwners) Claim(typeName, pluginName string) bool {
	t := NewInternedString(typeName)
	p := NewInternedString(pluginName)

	if existing, ok := o.typesToPlugins[t]; ok && existing != p {
		return false
	}

	o.typesToPlugins[t] = p
	set, ok := o.pluginsToTypes[p]
	if !ok {
		set = make(map[InternedString]struct{})
		o.pluginsToTypes[p] = set
	}
	set[t] = struct{}{}
	return true
}

// Len returns the number of owned types.
func (o *TypeOwners) Len() int {
	return len(o.typesToPlugins)
}

// Snapshot returns a copy of the type to owner mapping.
func (o *TypeOwners) Snapshot() map[string]string {
	out := make(map[string]string, len(o.typesToPlugins))
	for t, p := range o.typesToPlugins {
		out[t.String()] = p.String()
	}
	return out
}
