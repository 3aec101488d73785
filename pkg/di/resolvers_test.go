package di_test

import (
	"fmt"
	"testing"

	"github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/svc/layout"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"github.com/metalstrap/metalstrap/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTimer_Success(t *testing.T) {
	t.Parallel()

	// Create an injector with a timer registered
	injector := do.New()
	do.Provide(injector, func(_ do.Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	resolvedTimer, err := di.ResolveTimer(injector)

	require.NoError(t, err)
	require.NotNil(t, resolvedTimer, "ResolveTimer should return a non-nil timer")

	// Verify the timer is functional by calling Start
	resolvedTimer.Start()
	total, stage := resolvedTimer.GetTiming()
	assert.GreaterOrEqual(t, total.Nanoseconds(), int64(0), "Total time should be non-negative")
	assert.GreaterOrEqual(t, stage.Nanoseconds(), int64(0), "Stage time should be non-negative")
}

func TestResolveTimer_Error(t *testing.T) {
	t.Parallel()

	// Create an empty injector (no timer registered)
	injector := do.New()

	resolvedTimer, err := di.ResolveTimer(injector)

	require.Error(t, err)
	assert.Nil(t, resolvedTimer)
	assert.Contains(t, err.Error(), "resolve timer dependency")
}

func TestResolvePipelineBuilder_Success(t *testing.T) {
	t.Parallel()

	// Create an injector with a builder registered
	injector := do.New()
	do.Provide(injector, func(_ do.Injector) (pipeline.Builder, error) {
		return pipeline.NewBuilder(), nil
	})

	builder, err := di.ResolvePipelineBuilder(injector)

	require.NoError(t, err)
	require.NotNil(t, builder, "ResolvePipelineBuilder should return a non-nil builder")
}

func TestResolvePipelineBuilder_Error(t *testing.T) {
	t.Parallel()

	// Create an empty injector (no builder registered)
	injector := do.New()

	builder, err := di.ResolvePipelineBuilder(injector)

	require.Error(t, err)
	assert.Nil(t, builder)
	assert.Contains(t, err.Error(), "resolve pipeline builder dependency")
}

func TestResolveLayoutGenerator_Success(t *testing.T) {
	t.Parallel()

	// Create an injector with a generator registered
	injector := do.New()
	do.Provide(injector, func(_ do.Injector) (layout.Generator, error) {
		return layout.NewGenerator(), nil
	})

	generator, err := di.ResolveLayoutGenerator(injector)

	require.NoError(t, err)
	require.NotNil(t, generator, "ResolveLayoutGenerator should return a non-nil generator")
}

func TestResolveLayoutGenerator_Error(t *testing.T) {
	t.Parallel()

	// Create an empty injector (no generator registered)
	injector := do.New()

	generator, err := di.ResolveLayoutGenerator(injector)

	require.Error(t, err)
	assert.Nil(t, generator)
	assert.Contains(t, err.Error(), "resolve layout generator dependency")
}

func TestWithTimer_Success(t *testing.T) {
	t.Parallel()

	// Create an injector with a timer registered
	injector := do.New()
	do.Provide(injector, func(_ do.Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	handlerCalled := false
	handler := func(_ *cobra.Command, _ di.Injector, tmr timer.Timer) error {
		handlerCalled = true

		tmr.Start()

		return nil
	}

	wrappedHandler := di.WithTimer(handler)
	err := wrappedHandler(&cobra.Command{}, injector)

	require.NoError(t, err)
	assert.True(t, handlerCalled, "Handler should have been called")
}

func TestWithTimer_HandlerError(t *testing.T) {
	t.Parallel()

	// Create an injector with a timer registered
	injector := do.New()
	do.Provide(injector, func(_ do.Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	handler := func(_ *cobra.Command, _ di.Injector, _ timer.Timer) error {
		return fmt.Errorf("handler failed: %w", errHandler)
	}

	wrappedHandler := di.WithTimer(handler)
	err := wrappedHandler(&cobra.Command{}, injector)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
}

func TestWithTimer_TimerResolveError(t *testing.T) {
	t.Parallel()

	// Create an empty injector (no timer registered)
	injector := do.New()

	handler := func(_ *cobra.Command, _ di.Injector, _ timer.Timer) error {
		return nil
	}

	wrappedHandler := di.WithTimer(handler)
	err := wrappedHandler(&cobra.Command{}, injector)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve timer dependency")
}
