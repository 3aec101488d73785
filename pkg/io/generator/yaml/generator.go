// Package yamlgenerator generates YAML files from configuration models.
package yamlgenerator

import (
	"fmt"

	"github.com/metalstrap/metalstrap/pkg/fsutil"
	"github.com/metalstrap/metalstrap/pkg/io/generator"
	"github.com/metalstrap/metalstrap/pkg/io/marshaller"
)

// Options configures where generated YAML is written.
type Options struct {
	// Output is the file path to write to. When empty the content is only returned.
	Output string
	// Force overwrites an existing file at Output.
	Force bool
}

// YAMLGenerator marshals a model to YAML and optionally writes it to disk.
type YAMLGenerator[T any] struct {
	Marshaller marshaller.Marshaller[T]
}

var _ generator.Generator[any, Options] = (*YAMLGenerator[any])(nil)

// NewYAMLGenerator creates a new YAML generator for the given model type.
func NewYAMLGenerator[T any]() *YAMLGenerator[T] {
	return &YAMLGenerator[T]{
		Marshaller: marshaller.NewYAMLMarshaller[T](),
	}
}

// Generate marshals the model, writes it to opts.Output when set, and
// returns the generated content.
func (g *YAMLGenerator[T]) Generate(model T, opts Options) (string, error) {
	out, err := g.Marshaller.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to generate YAML: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("failed to write YAML: %w", err)
		}

		return result, nil
	}

	return out, nil
}
