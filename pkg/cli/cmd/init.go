package cmd

import (
	"github.com/metalstrap/metalstrap/pkg/cli/lifecycle"
	runtime "github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/io/configmanager"
	"github.com/metalstrap/metalstrap/pkg/io/scaffolder"
	"github.com/spf13/cobra"
)

// defaultMachineName seeds the generated host name when --name is not given.
const defaultMachineName = "metal-01"

// initOptions carries the flags of the init command.
type initOptions struct {
	output string
	force  bool
	name   string
}

// NewInitCmd wires the init command using the shared runtime container.
func NewInitCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a machine configuration and starter overlay",
		Long: `Scaffold a machine.yaml seeded from flags and defaults, plus a starter
overlay under layers/. Existing files are kept unless --force is given.`,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultMachineFieldSelectors())

	opts := &initOptions{}
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".",
		"Directory to scaffold the project into")
	cmd.Flags().BoolVar(&opts.force, "force", false,
		"Overwrite existing files")
	cmd.Flags().StringVar(&opts.name, "name", defaultMachineName,
		"Machine name used for the generated host name")

	// Scaffolding starts from defaults and flags only; an existing config
	// file in the search path must not leak into the generated files, and
	// there is nothing to validate before the files exist.
	cmd.RunE = lifecycle.WrapHandlerWithOptions(
		runtimeContainer,
		cfgManager,
		func(cmd *cobra.Command, manager *configmanager.ConfigManager, deps lifecycle.Deps) error {
			return handleInitRunE(cmd, manager, deps, opts)
		},
		configmanager.LoadOptions{IgnoreConfigFile: true, SkipValidation: true},
	)

	return cmd
}

// handleInitRunE scaffolds the project files from the loaded configuration.
func handleInitRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps lifecycle.Deps,
	opts *initOptions,
) error {
	stage := lifecycle.Config{
		TitleEmoji:         "🗂️",
		TitleContent:       "Initialize project...",
		ActivityContent:    "scaffolding project files",
		SuccessContent:     "project initialized",
		ErrorMessagePrefix: "failed to initialize project",
	}

	return lifecycle.RunStage(cmd, deps, stage, func() error {
		return scaffolder.
			NewScaffolder(cfgManager.Config, opts.name, cmd.OutOrStdout()).
			Scaffold(opts.output, opts.force)
	})
}
