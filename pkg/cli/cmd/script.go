package cmd

import (
	"github.com/metalstrap/metalstrap/pkg/cli/lifecycle"
	runtime "github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/io/configmanager"
	"github.com/metalstrap/metalstrap/pkg/svc/emitter"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"github.com/spf13/cobra"
)

// defaultScriptOutput is where the script command writes the install script.
const defaultScriptOutput = "install.sh"

// scriptOptions carries the flags of the script command.
type scriptOptions struct {
	buildOptions

	output string
	force  bool
}

// NewScriptCmd wires the script command using the shared runtime container.
func NewScriptCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Build an install script from the machine configuration",
		Long: `Build an executable install script that partitions the target device,
installs the system image, and detaches cleanly. Without --opinionated the
configuration must already carry a disk layout; with it the layout is
generated from the declared disks.`,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultMachineFieldSelectors())

	opts := &scriptOptions{}
	registerBuildFlags(cmd, &opts.buildOptions, false)
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultScriptOutput,
		"File the install script is written to")
	cmd.Flags().BoolVar(&opts.force, "force", false,
		"Overwrite an existing output file")

	cmd.RunE = lifecycle.WrapHandler(
		runtimeContainer,
		cfgManager,
		func(cmd *cobra.Command, manager *configmanager.ConfigManager, deps lifecycle.Deps) error {
			return handleScriptRunE(cmd, manager, deps, opts)
		},
	)

	return cmd
}

// handleScriptRunE resolves the configuration layers, builds the
// provisioning pipeline for the target device, and renders it as an
// executable install script.
func handleScriptRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps lifecycle.Deps,
	opts *scriptOptions,
) error {
	machine := cfgManager.Config

	stage := lifecycle.Config{
		TitleEmoji:         "📜",
		TitleContent:       "Build install script...",
		ActivityContent:    "building install script",
		SuccessContent:     "install script built",
		ErrorMessagePrefix: "failed to build install script",
	}

	return lifecycle.RunStage(cmd, deps, stage, func() error {
		resolved, err := resolveLayers(machine, deps.Generator, opts.buildOptions)
		if err != nil {
			return err
		}

		reportShapeWarnings(cmd, resolved)

		pipe, err := deps.Builder.Build(
			resolved,
			targetDevice(machine, opts.device),
			machine.Spec.Install,
			pipeline.Options{},
		)
		if err != nil {
			return err
		}

		artifact, err := emitter.NewScriptEmitter().Emit(pipe)
		if err != nil {
			return err
		}

		return writeArtifactFile(cmd, artifact.Body, opts.output, opts.force, true)
	})
}
