package di

import (
	"fmt"

	"github.com/metalstrap/metalstrap/pkg/svc/layout"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"github.com/metalstrap/metalstrap/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolvePipelineBuilder retrieves the provisioning pipeline builder dependency
// from the injector with consistent error handling.
func ResolvePipelineBuilder(injector Injector) (pipeline.Builder, error) {
	builder, err := do.Invoke[pipeline.Builder](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve pipeline builder dependency: %w", err)
	}

	return builder, nil
}

// ResolveLayoutGenerator retrieves the disk layout generator dependency from
// the injector with consistent error handling.
func ResolveLayoutGenerator(injector Injector) (layout.Generator, error) {
	generator, err := do.Invoke[layout.Generator](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve layout generator dependency: %w", err)
	}

	return generator, nil
}

// Handler decorators.

// WithTimer decorates a handler to automatically resolve the timer dependency.
// This higher-order function simplifies command handlers that need timer access.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
