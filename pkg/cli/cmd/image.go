package cmd

import (
	"path/filepath"

	"github.com/metalstrap/metalstrap/pkg/cli/lifecycle"
	runtime "github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/io/configmanager"
	yamlgenerator "github.com/metalstrap/metalstrap/pkg/io/generator/yaml"
	"github.com/metalstrap/metalstrap/pkg/svc/emitter"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"github.com/spf13/cobra"
)

const (
	// defaultImageOutput is the directory the image command writes into.
	defaultImageOutput = "installer"

	// imageScriptFile is the embedded install script inside the output directory.
	imageScriptFile = "install.sh"

	// imageProfileFile is the installer environment profile inside the output directory.
	imageProfileFile = "configuration.yaml"
)

// imageOptions carries the flags of the image command.
type imageOptions struct {
	buildOptions

	output        string
	force         bool
	payload       string
	payloadDest   string
	console       string
	autologinUser string
	reboot        bool
}

// NewImageCmd wires the image command using the shared runtime container.
func NewImageCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Build bootable-installer-image inputs from the machine configuration",
		Long: `Build the inputs an image builder needs for a bootable installer: the
embedded install script and the installer environment profile that runs it
once on the trigger console. The embedded pipeline reboots into the installed
system when it finishes.`,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultMachineFieldSelectors())

	opts := &imageOptions{}
	registerBuildFlags(cmd, &opts.buildOptions, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultImageOutput,
		"Directory the image inputs are written to")
	cmd.Flags().BoolVar(&opts.force, "force", false,
		"Overwrite existing output files")
	cmd.Flags().StringVar(&opts.payload, "payload", "",
		"Directory copied into the installed root after the system image")
	cmd.Flags().StringVar(&opts.payloadDest, "payload-dest", "",
		"Destination of the payload relative to the target root")
	cmd.Flags().StringVar(&opts.console, "console", emitter.DefaultConsole,
		"Virtual console whose first login triggers the install")
	cmd.Flags().StringVar(&opts.autologinUser, "autologin-user", emitter.DefaultAutologinUser,
		"Account the trigger console logs in automatically")
	cmd.Flags().BoolVar(&opts.reboot, "reboot", true,
		"Reboot into the installed system when the pipeline finishes")

	cmd.RunE = lifecycle.WrapHandler(
		runtimeContainer,
		cfgManager,
		func(cmd *cobra.Command, manager *configmanager.ConfigManager, deps lifecycle.Deps) error {
			return handleImageRunE(cmd, manager, deps, opts)
		},
	)

	return cmd
}

// handleImageRunE resolves the configuration layers, builds the embedded
// provisioning pipeline, and writes the install script plus the installer
// environment profile into the output directory.
func handleImageRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps lifecycle.Deps,
	opts *imageOptions,
) error {
	machine := cfgManager.Config

	stage := lifecycle.Config{
		TitleEmoji:         "💿",
		TitleContent:       "Build installer image inputs...",
		ActivityContent:    "building installer image inputs",
		SuccessContent:     "installer image inputs built",
		ErrorMessagePrefix: "failed to build installer image inputs",
	}

	return lifecycle.RunStage(cmd, deps, stage, func() error {
		resolved, err := resolveLayers(machine, deps.Generator, opts.buildOptions)
		if err != nil {
			return err
		}

		reportShapeWarnings(cmd, resolved)

		pipelineOpts := pipeline.Options{Reboot: opts.reboot}
		if opts.payload != "" {
			pipelineOpts.Payload = &pipeline.Payload{
				Source:      opts.payload,
				Destination: opts.payloadDest,
			}
		}

		pipe, err := deps.Builder.Build(
			resolved,
			targetDevice(machine, opts.device),
			machine.Spec.Install,
			pipelineOpts,
		)
		if err != nil {
			return err
		}

		artifact, err := emitter.NewImageEmitter().Emit(pipe, emitter.BootTrigger{
			Console: opts.console,
			User:    opts.autologinUser,
		})
		if err != nil {
			return err
		}

		err = writeArtifactFile(
			cmd,
			artifact.Script.Body,
			filepath.Join(opts.output, imageScriptFile),
			opts.force,
			true,
		)
		if err != nil {
			return err
		}

		profile, err := yamlgenerator.NewYAMLGenerator[map[string]any]().Generate(
			artifact.Profile,
			yamlgenerator.Options{},
		)
		if err != nil {
			return err
		}

		return writeArtifactFile(
			cmd,
			profile,
			filepath.Join(opts.output, imageProfileFile),
			opts.force,
			false,
		)
	})
}
