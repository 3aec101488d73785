package di

import (
	"github.com/metalstrap/metalstrap/pkg/svc/layout"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"github.com/metalstrap/metalstrap/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command
// and tests. It registers default implementations for the timer, the
// provisioning pipeline builder, and the disk layout generator.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		providePipelineBuilder,
		provideLayoutGenerator,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// providePipelineBuilder registers the provisioning pipeline builder dependency.
func providePipelineBuilder(i Injector) error {
	do.Provide(i, func(Injector) (pipeline.Builder, error) {
		return pipeline.NewBuilder(), nil
	})

	return nil
}

// provideLayoutGenerator registers the opinionated disk layout generator dependency.
func provideLayoutGenerator(i Injector) error {
	do.Provide(i, func(Injector) (layout.Generator, error) {
		return layout.NewGenerator(), nil
	})

	return nil
}
