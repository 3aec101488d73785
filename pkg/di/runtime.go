// Package di wires command handlers to their dependencies through a small
// runtime container built on samber/do.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector aliases the underlying container type so providers, resolvers, and
// command handlers share one vocabulary.
type Injector = do.Injector

// Module registers one or more dependencies with an injector.
type Module func(Injector) error

// Runtime holds the base modules applied to every invocation.
type Runtime struct {
	modules []Module
}

// New constructs a runtime from the given base modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs the handler against a fresh injector populated by the base
// modules followed by any extra modules. Each invocation gets its own
// injector, so registrations never leak between invocations. Module and
// handler errors are returned unmodified.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()
	defer injector.Shutdown()

	err := applyModules(injector, r.modules)
	if err != nil {
		return err
	}

	err = applyModules(injector, extraModules)
	if err != nil {
		return err
	}

	return handler(injector)
}

// applyModules runs modules in order, skipping nil entries.
func applyModules(injector Injector, modules []Module) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return nil
}

// RunEWithRuntime adapts a handler into a cobra RunE function that executes
// inside the runtime's injector.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
