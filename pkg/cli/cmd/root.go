package cmd

import (
	"fmt"

	"github.com/metalstrap/metalstrap/pkg/cli/helpers"
	"github.com/metalstrap/metalstrap/pkg/cli/ui/errorhandler"
	runtime "github.com/metalstrap/metalstrap/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:   "metalstrap",
		Short: "metalstrap builds deterministic install scripts and installer images for bare-metal machines",
		Long: "metalstrap layers machine configuration into a resolved tree and turns it into\n" +
			"provisioning artifacts: standalone install scripts or bootable-installer-image inputs.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	// Set version if available
	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show per-activity timing output",
	)

	// Add all subcommands
	cmd.AddCommand(NewInitCmd(runtimeContainer))
	cmd.AddCommand(NewScriptCmd(runtimeContainer))
	cmd.AddCommand(NewImageCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
