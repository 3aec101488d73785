package layerfile

import (
	"fmt"
	"strings"

	"github.com/metalstrap/metalstrap/pkg/layer"
	"gopkg.in/yaml.v3"
)

// FromAssignments turns key=value pairs into a single ad-hoc layer at force
// priority, so command-line values beat every file-borne layer. Keys are
// dotted key-paths; values are parsed as YAML scalars, so "true" becomes a
// bool and "8" an int, matching what the same text would produce in a file.
func FromAssignments(name string, assignments []string) (layer.Layer, error) {
	values := make(map[string]any, len(assignments))

	for _, assignment := range assignments {
		key, rawValue, found := strings.Cut(assignment, "=")
		if !found || key == "" {
			return layer.Layer{}, fmt.Errorf(
				"%w: %q (expected key=value)",
				ErrMalformedAssignment, assignment,
			)
		}

		values[key] = parseScalar(rawValue)
	}

	return layer.NewWithPriority(name, layer.PriorityForce, values), nil
}

func parseScalar(raw string) any {
	// key= means the empty string, not YAML null.
	if raw == "" {
		return ""
	}

	var value any

	err := yaml.Unmarshal([]byte(raw), &value)
	if err != nil {
		return raw
	}

	return value
}
