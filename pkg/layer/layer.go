package layer

// Priority ranks layers on direct conflict. Lower numbers are stronger, so a
// value set at PriorityForce beats one set at PriorityDefault regardless of
// declaration order.
type Priority int

// Well-known priorities, mirroring the strength ladder used by module-system
// option defaults.
const (
	// PriorityForce marks values that must win over ordinary configuration.
	PriorityForce Priority = 50
	// PriorityDefault is the strength of a plain assignment.
	PriorityDefault Priority = 100
	// PriorityWeak marks overridable fallback values.
	PriorityWeak Priority = 1000
)

// Mode selects how a layer's assignments combine with earlier layers.
type Mode string

const (
	// ModeMerge combines mapping values recursively with the existing tree.
	ModeMerge Mode = "Merge"
	// ModeReplace discards the existing subtree at each assigned path before
	// applying the layer's value, and blocks weaker later layers from
	// reintroducing descendants under it.
	ModeReplace Mode = "Replace"
)

// Layer is one immutable, named slice of configuration.
//
// Assignment keys are dotted key-paths (see [ParsePath]); assignment values
// are scalars, sequences, or nested string-keyed mappings. Sequences are
// atomic values and never merge element-wise. Construct layers with [New],
// [NewWithPriority], or [NewReplace]; the zero Layer is empty and harmless.
type Layer struct {
	name     string
	priority Priority
	mode     Mode
	values   map[string]any
}

// New returns a merge-mode layer at [PriorityDefault].
func New(name string, values map[string]any) Layer {
	return NewWithPriority(name, PriorityDefault, values)
}

// NewWithPriority returns a merge-mode layer at the given priority.
func NewWithPriority(name string, priority Priority, values map[string]any) Layer {
	return Layer{
		name:     name,
		priority: priority,
		mode:     ModeMerge,
		values:   deepCopyValues(values),
	}
}

// NewReplace returns a replace-mode layer at the given priority.
func NewReplace(name string, priority Priority, values map[string]any) Layer {
	return Layer{
		name:     name,
		priority: priority,
		mode:     ModeReplace,
		values:   deepCopyValues(values),
	}
}

// Name returns the layer's diagnostic name.
func (l Layer) Name() string {
	return l.name
}

// Priority returns the layer's conflict strength.
func (l Layer) Priority() Priority {
	if l.priority == 0 {
		return PriorityDefault
	}

	return l.priority
}

// Mode returns the layer's combination mode.
func (l Layer) Mode() Mode {
	if l.mode == "" {
		return ModeMerge
	}

	return l.mode
}

// Values returns a deep copy of the layer's assignments.
func (l Layer) Values() map[string]any {
	return deepCopyValues(l.values)
}

// IsEmpty reports whether the layer carries no assignments.
func (l Layer) IsEmpty() bool {
	return len(l.values) == 0
}

func deepCopyValues(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}

	copied := make(map[string]any, len(values))
	for key, value := range values {
		copied[key] = deepCopyValue(value)
	}

	return copied
}

// deepCopyValue copies the mapping and sequence spine of a value tree.
// Scalars are shared; every container is cloned so neither side can mutate
// the other.
func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCopyValues(typed)
	case []any:
		copied := make([]any, len(typed))
		for index, element := range typed {
			copied[index] = deepCopyValue(element)
		}

		return copied
	default:
		return typed
	}
}
