package layer

import (
	"maps"
	"slices"
)

// claim records which write currently owns a position in the resolved tree:
// the priority it was written at and the position of its layer in the stack.
type claim struct {
	priority  Priority
	sequence  int
	layerName string
}

// beats reports whether an incoming claim overrides an existing one: a lower
// priority number always wins, and at equal priority the later (or same)
// layer wins.
func (c claim) beats(existing claim) bool {
	if c.priority != existing.priority {
		return c.priority < existing.priority
	}

	return c.sequence >= existing.sequence
}

// node is one position in the resolved configuration tree. A node is a leaf
// (scalar or sequence value), a mapping with ordered children, or fresh.
// claim tracks the strongest write that touched the node or its subtree;
// barrier marks the root of a replace-mode assignment.
type node struct {
	children map[string]*node
	order    []string
	value    any
	leaf     bool
	mapping  bool

	claim claim

	barrier      bool
	barrierClaim claim
}

func (n *node) child(segment string, incoming claim) *node {
	if n.children == nil {
		n.children = map[string]*node{}
	}

	existing, found := n.children[segment]
	if found {
		return existing
	}

	created := &node{claim: incoming}
	n.children[segment] = created
	n.order = append(n.order, segment)

	return created
}

func (n *node) strengthen(incoming claim) {
	if incoming.beats(n.claim) {
		n.claim = incoming
	}
}

func (n *node) clear() {
	n.children = nil
	n.order = nil
	n.value = nil
	n.leaf = false
	n.mapping = false
}

// fresh reports whether the node has never held a value or shape.
func (n *node) fresh() bool {
	return !n.leaf && !n.mapping
}

type resolver struct {
	root     *node
	warnings []Warning
}

// Resolve merges an ordered stack of layers into one configuration. Layers
// are applied in declaration order; within a layer, assignments apply in
// lexicographic key-path order so resolution never depends on map iteration.
func Resolve(layers ...Layer) *Resolved {
	res := &resolver{root: &node{mapping: true}}

	for sequence, current := range layers {
		res.applyLayer(current, sequence)
	}

	return &Resolved{
		root:     res.root,
		layers:   slices.Clone(layers),
		warnings: res.warnings,
	}
}

func (r *resolver) applyLayer(current Layer, sequence int) {
	incoming := claim{
		priority:  current.Priority(),
		sequence:  sequence,
		layerName: current.Name(),
	}
	replace := current.Mode() == ModeReplace

	for _, keyPath := range slices.Sorted(maps.Keys(current.values)) {
		r.apply(ParsePath(keyPath), current.values[keyPath], incoming, replace)
	}
}

// apply walks from the root to the assignment's target node and installs the
// value there. The walk stops silently when it crosses a replace barrier the
// incoming claim cannot beat.
func (r *resolver) apply(target Path, value any, incoming claim, replace bool) {
	position := r.root
	walked := Path{}

	for _, segment := range target {
		next := position.child(segment, incoming)
		walked = walked.Child(segment)

		if next.barrier && !incoming.beats(next.barrierClaim) {
			return
		}

		if next.leaf && len(walked) < len(target) {
			// An ancestor of the target holds a scalar; descending implies a
			// mapping there, which is a shape conflict.
			if !incoming.beats(next.claim) {
				return
			}

			r.warnShape(walked, incoming, next.claim)
			next.value = nil
			next.leaf = false
		}

		next.strengthen(incoming)
		position = next
	}

	if replace {
		if !position.fresh() && !incoming.beats(position.claim) {
			return
		}

		position.clear()
		position.barrier = true
		position.barrierClaim = incoming
		position.claim = incoming
	}

	r.merge(position, walked, value, incoming)
}

// merge combines one assignment value into the tree at the given node.
func (r *resolver) merge(position *node, at Path, value any, incoming claim) {
	mapping, isMapping := value.(map[string]any)
	if isMapping {
		r.mergeMapping(position, at, mapping, incoming)

		return
	}

	r.mergeScalar(position, at, value, incoming)
}

func (r *resolver) mergeMapping(position *node, at Path, mapping map[string]any, incoming claim) {
	if position.leaf {
		if !incoming.beats(position.claim) {
			return
		}

		r.warnShape(at, incoming, position.claim)
		position.value = nil
		position.leaf = false
	}

	position.mapping = true
	position.strengthen(incoming)

	for _, key := range slices.Sorted(maps.Keys(mapping)) {
		next := position.child(key, incoming)
		if next.barrier && !incoming.beats(next.barrierClaim) {
			continue
		}

		r.merge(next, at.Child(key), mapping[key], incoming)
	}
}

func (r *resolver) mergeScalar(position *node, at Path, value any, incoming claim) {
	if position.mapping {
		if !incoming.beats(position.claim) {
			return
		}

		r.warnShape(at, incoming, position.claim)
		position.clear()
		position.barrier = false
	} else if position.leaf && !incoming.beats(position.claim) {
		return
	}

	position.value = deepCopyValue(value)
	position.leaf = true
	position.claim = incoming
}

// warnShape records a scalar-versus-mapping conflict. Only equal-priority
// conflicts are surfaced; cross-priority overrides are ordinary layering.
func (r *resolver) warnShape(at Path, incoming, existing claim) {
	if incoming.priority != existing.priority {
		return
	}

	r.warnings = append(r.warnings, Warning{
		Path:     at.String(),
		Layer:    incoming.layerName,
		Earlier:  existing.layerName,
		Priority: incoming.priority,
	})
}
