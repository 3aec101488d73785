package lifecycle

import (
	"fmt"

	"github.com/metalstrap/metalstrap/pkg/cli/helpers"
	runtime "github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/io/configmanager"
	"github.com/metalstrap/metalstrap/pkg/svc/layout"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"github.com/metalstrap/metalstrap/pkg/utils/notify"
	"github.com/metalstrap/metalstrap/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// Deps groups the injectable collaborators required by build command handlers.
type Deps struct {
	Timer     timer.Timer
	Builder   pipeline.Builder
	Generator layout.Generator
}

// Config describes the user-facing messaging around one build stage.
type Config struct {
	TitleEmoji         string
	TitleContent       string
	ActivityContent    string
	SuccessContent     string
	ErrorMessagePrefix string
}

// WrapHandler resolves build dependencies from the runtime container, loads
// the machine configuration, and invokes the handler with both. When the
// config flag is set on the command, it selects the configuration file before
// loading.
func WrapHandler(
	runtimeContainer *runtime.Runtime,
	cfgManager *configmanager.ConfigManager,
	handler func(*cobra.Command, *configmanager.ConfigManager, Deps) error,
) func(*cobra.Command, []string) error {
	return WrapHandlerWithOptions(runtimeContainer, cfgManager, handler, configmanager.LoadOptions{})
}

// WrapHandlerWithOptions behaves like WrapHandler but loads the machine
// configuration with the given options. The options' timer is replaced by the
// command's output timer.
func WrapHandlerWithOptions(
	runtimeContainer *runtime.Runtime,
	cfgManager *configmanager.ConfigManager,
	handler func(*cobra.Command, *configmanager.ConfigManager, Deps) error,
	loadOptions configmanager.LoadOptions,
) func(*cobra.Command, []string) error {
	return runtime.RunEWithRuntime(
		runtimeContainer,
		runtime.WithTimer(
			func(cmd *cobra.Command, injector runtime.Injector, tmr timer.Timer) error {
				// Wrap output for automatic stage separation and point the
				// config manager at the same writer.
				stageWriter := notify.NewStageSeparatingWriter(cmd.OutOrStdout())
				cmd.SetOut(stageWriter)
				cfgManager.Writer = stageWriter

				if tmr != nil {
					tmr.Start()
				}

				if path := helpers.ConfigFilePath(cmd); path != "" {
					cfgManager.SetConfigFile(path)
				}

				loadOptions.Timer = helpers.MaybeTimer(cmd, tmr)

				_, err := cfgManager.Load(loadOptions)
				if err != nil {
					return fmt.Errorf("failed to load machine configuration: %w", err)
				}

				deps, err := resolveDeps(injector, tmr)
				if err != nil {
					return err
				}

				return handler(cmd, cfgManager, deps)
			},
		),
	)
}

// RunStage executes action inside the standard stage messaging: title and
// activity before, success with optional timing after. Action errors are
// wrapped with the configured prefix.
func RunStage(cmd *cobra.Command, deps Deps, config Config, action func() error) error {
	if deps.Timer != nil {
		deps.Timer.NewStage()
	}

	notify.Titlef(cmd.OutOrStdout(), config.TitleEmoji, "%s", config.TitleContent)
	notify.Activityf(cmd.OutOrStdout(), "%s", config.ActivityContent)

	err := action()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrorMessagePrefix, err)
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: config.SuccessContent,
		Timer:   helpers.MaybeTimer(cmd, deps.Timer),
		Writer:  cmd.OutOrStdout(),
	})

	return nil
}

// resolveDeps pulls the build collaborators out of the injector.
func resolveDeps(injector runtime.Injector, tmr timer.Timer) (Deps, error) {
	builder, err := runtime.ResolvePipelineBuilder(injector)
	if err != nil {
		return Deps{}, err
	}

	generator, err := runtime.ResolveLayoutGenerator(injector)
	if err != nil {
		return Deps{}, err
	}

	return Deps{Timer: tmr, Builder: builder, Generator: generator}, nil
}
