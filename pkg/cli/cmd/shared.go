package cmd

import (
	"fmt"
	"os"

	"github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/metalstrap/metalstrap/pkg/cli/helpers"
	"github.com/metalstrap/metalstrap/pkg/fsutil"
	"github.com/metalstrap/metalstrap/pkg/io/layerfile"
	"github.com/metalstrap/metalstrap/pkg/layer"
	"github.com/metalstrap/metalstrap/pkg/svc/layout"
	"github.com/metalstrap/metalstrap/pkg/svc/sanitizer"
	"github.com/metalstrap/metalstrap/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// machineLayerName names the base layer carrying the machine config's modules.
const machineLayerName = "machine"

// setLayerName names the layer synthesized from --set assignments.
const setLayerName = "set"

// buildOptions carries the flags shared by the script and image commands.
type buildOptions struct {
	device      string
	pool        string
	opinionated bool
	layerPaths  []string
	setValues   []string
}

// registerBuildFlags adds the configuration selection and layering flags
// shared by the script and image commands. The opinionated default differs
// per command: scripts render exactly what the configuration declares, while
// images always need a complete installer environment.
func registerBuildFlags(cmd *cobra.Command, opts *buildOptions, opinionatedDefault bool) {
	cmd.Flags().StringP(helpers.ConfigFlagName, "c", "",
		"Path to the machine configuration file")
	cmd.Flags().StringVarP(&opts.device, "device", "d", "",
		"Target block device (defaults to the first declared disk)")
	cmd.Flags().StringVar(&opts.pool, "pool", "",
		"Storage pool name for the targeted disk")
	cmd.Flags().BoolVar(&opts.opinionated, "opinionated", opinionatedDefault,
		"Apply the sanitize layer and generate the disk layout from the declared disks")
	cmd.Flags().StringArrayVar(&opts.layerPaths, "layer", nil,
		"Overlay file stacked on the machine configuration (repeatable, later files win)")
	cmd.Flags().StringArrayVar(&opts.setValues, "set", nil,
		"Force a key-path to a value, e.g. 'time.timeZone=Etc/UTC' (repeatable)")
}

// resolveLayers builds and resolves the configuration layer stack: the
// machine's modules first, then for opinionated runs the sanitize layer and
// the generated disk layout, then overlay files in order, and finally any
// --set assignments at force priority.
func resolveLayers(
	machine *v1alpha1.Machine,
	generator layout.Generator,
	opts buildOptions,
) (*layer.Resolved, error) {
	stack := make([]layer.Layer, 0, len(opts.layerPaths)+4)
	stack = append(stack, layer.New(machineLayerName, machine.Spec.Modules))

	if opts.opinionated {
		stack = append(stack, sanitizer.Layer())

		layoutLayers, err := generator.Generate(targetDisks(machine, opts.device, opts.pool))
		if err != nil {
			return nil, fmt.Errorf("failed to generate disk layout: %w", err)
		}

		stack = append(stack, layoutLayers...)
	}

	fileLayers, err := layerfile.LoadAll(opts.layerPaths)
	if err != nil {
		return nil, err
	}

	stack = append(stack, fileLayers...)

	if len(opts.setValues) > 0 {
		setLayer, err := layerfile.FromAssignments(setLayerName, opts.setValues)
		if err != nil {
			return nil, err
		}

		stack = append(stack, setLayer)
	}

	return layer.Resolve(stack...), nil
}

// targetDevice returns the explicitly requested device, falling back to the
// machine's first declared disk.
func targetDevice(machine *v1alpha1.Machine, device string) string {
	if device != "" {
		return device
	}

	if len(machine.Spec.Disks) > 0 {
		return machine.Spec.Disks[0].Device
	}

	return ""
}

// targetDisks returns the disks handed to the layout generator: the declared
// disks, or a single synthesized spec when the machine declares none and a
// device was requested. A requested pool renames the targeted disk's pool.
func targetDisks(machine *v1alpha1.Machine, device, pool string) []v1alpha1.DiskSpec {
	disks := make([]v1alpha1.DiskSpec, len(machine.Spec.Disks))
	copy(disks, machine.Spec.Disks)

	if len(disks) == 0 {
		if device == "" {
			return disks
		}

		disk := v1alpha1.NewDiskSpec(device)
		disk.Pool = pool

		return []v1alpha1.DiskSpec{disk}
	}

	if pool == "" {
		return disks
	}

	target := targetDevice(machine, device)
	for index := range disks {
		if disks[index].Device == target {
			disks[index].Pool = pool
		}
	}

	return disks
}

// reportShapeWarnings surfaces scalar-versus-mapping conflicts recorded
// during resolution.
func reportShapeWarnings(cmd *cobra.Command, resolved *layer.Resolved) {
	for _, warning := range resolved.Warnings() {
		notify.Warningf(cmd.OutOrStdout(), "%s", warning)
	}
}

// writeArtifactFile writes content to path with the shared skip/overwrite
// semantics: an existing file is kept untouched unless force is set, and the
// user is told either way.
func writeArtifactFile(cmd *cobra.Command, content, path string, force, executable bool) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if exists && !force {
		notify.WriteMessage(notify.Message{
			Type:    notify.WarningType,
			Content: "skipped '%s', file exists use --force to overwrite",
			Args:    []any{path},
			Writer:  cmd.OutOrStdout(),
		})

		return nil
	}

	write := fsutil.TryWriteFile
	if executable {
		write = fsutil.TryWriteExecutable
	}

	_, err := write(content, path, force)
	if err != nil {
		return err
	}

	action := "created"
	if exists {
		action = "overwrote"
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.GenerateType,
		Content: "%s '%s'",
		Args:    []any{action, path},
		Writer:  cmd.OutOrStdout(),
	})

	return nil
}
