package marshaller

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// YAMLMarshaller marshals models to YAML. Serialization goes through the
// model's JSON representation, so json tags and custom MarshalJSON methods
// (e.g. default pruning on the Machine type) shape the output.
type YAMLMarshaller[T any] struct{}

var _ Marshaller[any] = (*YAMLMarshaller[any])(nil)

// NewYAMLMarshaller creates a new YAML marshaller for the given model type.
func NewYAMLMarshaller[T any]() *YAMLMarshaller[T] {
	return &YAMLMarshaller[T]{}
}

// Marshal serializes the model to YAML.
func (m *YAMLMarshaller[T]) Marshal(model T) (string, error) {
	out, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to marshal model to YAML: %w", err)
	}

	return string(out), nil
}
