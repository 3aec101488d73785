package layer

import "slices"

// Resolved is the outcome of merging a layer stack: one configuration tree
// with exactly one winning value per key-path. It is immutable; lookups
// return deep copies and [Resolved.Extend] builds a new result.
type Resolved struct {
	root     *node
	layers   []Layer
	warnings []Warning
}

// Lookup returns the materialized value at a dotted key-path. Mapping values
// come back as map[string]any with fully copied subtrees. The second result
// is false when no layer assigned anything at or below the path.
func (r *Resolved) Lookup(keyPath string) (any, bool) {
	position, found := r.node(keyPath)
	if !found {
		return nil, false
	}

	return materialize(position), true
}

// Has reports whether any layer assigned a value at or below the key-path.
func (r *Resolved) Has(keyPath string) bool {
	_, found := r.node(keyPath)

	return found
}

// StringAt returns the value at the key-path when it resolved to a string.
func (r *Resolved) StringAt(keyPath string) (string, bool) {
	value, found := r.Lookup(keyPath)
	if !found {
		return "", false
	}

	text, isString := value.(string)

	return text, isString
}

// Keys returns the child keys of the mapping at the key-path, in declaration
// order: the order in which layers first assigned each key. It returns nil
// when the path is absent or holds a scalar.
func (r *Resolved) Keys(keyPath string) []string {
	position, found := r.node(keyPath)
	if !found || position.leaf {
		return nil
	}

	return slices.Clone(position.order)
}

// Map materializes the whole configuration tree as a deep copy.
func (r *Resolved) Map() map[string]any {
	tree, isMapping := materialize(r.root).(map[string]any)
	if !isMapping {
		return map[string]any{}
	}

	return tree
}

// Layers returns a copy of the stack the configuration was resolved from.
func (r *Resolved) Layers() []Layer {
	return slices.Clone(r.layers)
}

// Warnings returns the shape conflicts recorded during resolution.
func (r *Resolved) Warnings() []Warning {
	return slices.Clone(r.warnings)
}

// Extend resolves the original stack with additional layers appended, so the
// new layers participate in full conflict resolution rather than being
// patched onto the materialized tree.
func (r *Resolved) Extend(extra ...Layer) *Resolved {
	combined := make([]Layer, 0, len(r.layers)+len(extra))
	combined = append(combined, r.layers...)
	combined = append(combined, extra...)

	return Resolve(combined...)
}

func (r *Resolved) node(keyPath string) (*node, bool) {
	position := r.root

	for _, segment := range ParsePath(keyPath) {
		next, found := position.children[segment]
		if !found {
			return nil, false
		}

		position = next
	}

	return position, true
}

func materialize(position *node) any {
	if position.leaf {
		return deepCopyValue(position.value)
	}

	tree := make(map[string]any, len(position.order))
	for _, key := range position.order {
		tree[key] = materialize(position.children[key])
	}

	return tree
}
