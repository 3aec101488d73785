package pipeline

import (
	"fmt"
	"path/filepath"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/metalstrap/metalstrap/pkg/layer"
	"github.com/metalstrap/metalstrap/pkg/svc/layout"
)

// diskTreePath is where the layout generator (or the operator's own modules)
// records the physical disk layout.
const diskTreePath = "disko.devices.disk"

// poolTreePath is where the resolved configuration declares storage pools.
const poolTreePath = "disko.devices.zpool"

// Payload is a configuration tree copied into the installed root after the
// install step. An empty Destination targets the root of the installed
// system.
type Payload struct {
	Source      string
	Destination string
}

// Options select the optional steps of a pipeline.
type Options struct {
	// Payload, when set, adds a recursive copy step between install and
	// detach.
	Payload *Payload

	// Reboot appends a trailing best-effort reboot step.
	Reboot bool
}

// Builder constructs provisioning pipelines from resolved configurations.
type Builder interface {
	Build(
		resolved *layer.Resolved,
		device string,
		install v1alpha1.InstallSpec,
		opts Options,
	) (*Pipeline, error)
}

// InstallPipelineBuilder builds the fixed partition, install, detach, export
// sequence.
type InstallPipelineBuilder struct{}

// NewBuilder creates a new InstallPipelineBuilder.
func NewBuilder() *InstallPipelineBuilder {
	return &InstallPipelineBuilder{}
}

var _ Builder = (*InstallPipelineBuilder)(nil)

// Build produces the provisioning pipeline for device from the resolved
// configuration. It fails with [ErrMissingDiskLayout] when the configuration
// has no disk entry for device, and with [ErrMissingSystemImage] or
// [ErrMissingPrepareScript] when the install spec is incomplete. No partial
// pipeline is ever returned.
func (b *InstallPipelineBuilder) Build(
	resolved *layer.Resolved,
	device string,
	install v1alpha1.InstallSpec,
	opts Options,
) (*Pipeline, error) {
	if install.SystemImage == "" {
		return nil, ErrMissingSystemImage
	}

	if install.PrepareScript == "" {
		return nil, ErrMissingPrepareScript
	}

	if opts.Payload != nil && opts.Payload.Source == "" {
		return nil, ErrMissingPayloadSource
	}

	if device == "" {
		return nil, fmt.Errorf("%w: no device requested", ErrMissingDiskLayout)
	}

	if !resolved.Has(diskTreePath + "." + layout.DiskKey(device)) {
		return nil, fmt.Errorf("%w: %q", ErrMissingDiskLayout, device)
	}

	installer := install.Installer
	if installer == "" {
		installer = v1alpha1.DefaultInstaller
	}

	mountRoot := install.MountRoot
	if mountRoot == "" {
		mountRoot = v1alpha1.DefaultMountRoot
	}

	pools := resolved.Keys(poolTreePath)

	steps := []Step{
		{
			Kind:           StepPartition,
			Description:    fmt.Sprintf("partition %s and mount the target filesystems", device),
			Command:        Command{Operand(install.PrepareScript)},
			AbortOnFailure: true,
		},
		{
			Kind:           StepInstall,
			Description:    "install the system image onto the target root",
			Command:        installCommand(installer, mountRoot, install.SystemImage),
			AbortOnFailure: true,
		},
	}

	if opts.Payload != nil {
		steps = append(steps, Step{
			Kind:        StepCopyPayload,
			Description: fmt.Sprintf("copy %s into the installed root", opts.Payload.Source),
			Command: append(
				Words("cp", "-r"),
				Operand(opts.Payload.Source),
				Operand(filepath.Join(mountRoot, opts.Payload.Destination)),
			),
			AbortOnFailure: true,
		})
	}

	steps = append(steps, Step{
		Kind:           StepDetach,
		Description:    fmt.Sprintf("unmount everything below %s", mountRoot),
		Command:        append(Words("umount", "-R"), Operand(mountRoot)),
		AbortOnFailure: true,
	})

	for _, pool := range pools {
		steps = append(steps, Step{
			Kind:           StepExportPool,
			Description:    fmt.Sprintf("export storage pool %s", pool),
			Command:        append(Words("zpool", "export"), Operand(pool)),
			AbortOnFailure: true,
		})
	}

	if opts.Reboot {
		steps = append(steps, Step{
			Kind:        StepReboot,
			Description: "reboot into the installed system",
			Command:     Words("reboot"),
			// The install is complete at this point; a failed reboot leaves
			// the operator at a console instead of failing the run.
			AbortOnFailure: false,
		})
	}

	return &Pipeline{
		Device:    device,
		MountRoot: mountRoot,
		Pools:     pools,
		Steps:     steps,
	}, nil
}

// installCommand builds the installer invocation: no root password prompt, no
// substituters (the image carries everything it needs), no channel copy. The
// installer assumes the default mount root unless told otherwise.
func installCommand(installer, mountRoot, systemImage string) Command {
	command := append(
		Words(installer, "--no-root-password", "--option", "substituters", "", "--no-channel-copy", "--system"),
		Operand(systemImage),
	)

	if mountRoot != v1alpha1.DefaultMountRoot {
		command = append(command, Word("--root"), Operand(mountRoot))
	}

	return command
}
