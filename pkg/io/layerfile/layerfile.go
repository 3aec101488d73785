// Package layerfile loads configuration layers from overlay files and from
// command-line assignments.
//
// An overlay file is a small YAML document:
//
//	name: site-tuning        # optional, defaults to the file name
//	priority: force          # optional: force, default, weak, or a number
//	replace: true            # optional, merge behavior when omitted
//	values:
//	  services.openssh.enable: true
//	  networking:
//	    hostName: edge-01
//
// Keys under values keep their case. Environment variable placeholders in
// the file are expanded before parsing.
package layerfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/metalstrap/metalstrap/pkg/layer"
	"github.com/metalstrap/metalstrap/pkg/utils/envvar"
	"gopkg.in/yaml.v3"
)

// Overlay mirrors the overlay file schema. The scaffolder generates starter
// overlays from this type; the json tags drive generation and the yaml tags
// drive strict parsing.
type Overlay struct {
	Name     string         `json:"name,omitempty"     yaml:"name"`
	Priority any            `json:"priority,omitempty" yaml:"priority"`
	Replace  bool           `json:"replace,omitempty"  yaml:"replace"`
	Values   map[string]any `json:"values,omitempty"   yaml:"values"`
}

// Load reads one overlay file and returns it as a configuration layer.
func Load(path string) (layer.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layer.Layer{}, fmt.Errorf("failed to read layer file: %w", err)
	}

	return parse(filepath.Base(path), envvar.ExpandBytes(data))
}

// LoadAll loads overlay files in the given order, so later files stack on
// earlier ones.
func LoadAll(paths []string) ([]layer.Layer, error) {
	layers := make([]layer.Layer, 0, len(paths))

	for _, path := range paths {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}

		layers = append(layers, loaded)
	}

	return layers, nil
}

func parse(fileName string, data []byte) (layer.Layer, error) {
	var doc Overlay

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return layer.Layer{}, fmt.Errorf("failed to parse layer file %q: %w", fileName, err)
	}

	if len(doc.Values) == 0 {
		return layer.Layer{}, fmt.Errorf("%w: %q", ErrNoValues, fileName)
	}

	name := doc.Name
	if name == "" {
		name = fileName
	}

	priority, err := parsePriority(doc.Priority)
	if err != nil {
		return layer.Layer{}, fmt.Errorf("layer file %q: %w", fileName, err)
	}

	if doc.Replace {
		return layer.NewReplace(name, priority, doc.Values), nil
	}

	return layer.NewWithPriority(name, priority, doc.Values), nil
}

// parsePriority accepts the well-known priority names or a raw number.
func parsePriority(value any) (layer.Priority, error) {
	switch typed := value.(type) {
	case nil:
		return layer.PriorityDefault, nil
	case int:
		return layer.Priority(typed), nil
	case string:
		switch strings.ToLower(typed) {
		case "force":
			return layer.PriorityForce, nil
		case "default":
			return layer.PriorityDefault, nil
		case "weak":
			return layer.PriorityWeak, nil
		default:
			return 0, fmt.Errorf(
				"%w: %q (use force, default, weak, or a number)",
				ErrInvalidPriority, typed,
			)
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidPriority, value)
	}
}
