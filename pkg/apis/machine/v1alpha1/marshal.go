package v1alpha1

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalYAML trims default values before emitting YAML.
func (m Machine) MarshalYAML() (any, error) {
	pruned := pruneMachineDefaults(m)
	out := buildMachineOutput(pruned)

	return out, nil
}

// MarshalJSON trims default values before emitting JSON (used by YAML library).
func (m Machine) MarshalJSON() ([]byte, error) {
	pruned := pruneMachineDefaults(m)

	out := buildMachineOutput(pruned)

	marshalled, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal machine to JSON: %w", err)
	}

	return marshalled, nil
}

// machineOutput is a YAML/JSON-friendly projection with omitempty tags.
type machineOutput struct {
	APIVersion string             `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Kind       string             `json:"kind,omitempty"       yaml:"kind,omitempty"`
	Spec       *machineSpecOutput `json:"spec,omitempty"       yaml:"spec,omitempty"`
}

type machineSpecOutput struct {
	Install *installSpecOutput `json:"install,omitempty" yaml:"install,omitempty"`
	Disks   []diskSpecOutput   `json:"disks,omitempty"   yaml:"disks,omitempty"`
	Modules map[string]any     `json:"modules,omitempty" yaml:"modules,omitempty"`
}

type installSpecOutput struct {
	SystemImage   string `json:"systemImage,omitempty"   yaml:"systemImage,omitempty"`
	PrepareScript string `json:"prepareScript,omitempty" yaml:"prepareScript,omitempty"`
	Installer     string `json:"installer,omitempty"     yaml:"installer,omitempty"`
	MountRoot     string `json:"mountRoot,omitempty"     yaml:"mountRoot,omitempty"`
}

type diskSpecOutput struct {
	Device     string                `json:"device,omitempty"     yaml:"device,omitempty"`
	Pool       string                `json:"pool,omitempty"       yaml:"pool,omitempty"`
	Partitions []partitionSpecOutput `json:"partitions,omitempty" yaml:"partitions,omitempty"`
}

type partitionSpecOutput struct {
	Label      string `json:"label,omitempty"      yaml:"label,omitempty"`
	Role       string `json:"role,omitempty"       yaml:"role,omitempty"`
	Size       string `json:"size,omitempty"       yaml:"size,omitempty"`
	Format     string `json:"format,omitempty"     yaml:"format,omitempty"`
	Mountpoint string `json:"mountpoint,omitempty" yaml:"mountpoint,omitempty"`
}

// pruneMachineDefaults resets fields that carry their default value so the
// emitted document only contains what the user actually decided.
func pruneMachineDefaults(machine Machine) Machine {
	install := &machine.Spec.Install
	if install.Installer == DefaultInstaller {
		install.Installer = ""
	}

	if install.MountRoot == DefaultMountRoot {
		install.MountRoot = ""
	}

	for index := range machine.Spec.Disks {
		if machine.Spec.Disks[index].Pool == DefaultPool {
			machine.Spec.Disks[index].Pool = ""
		}
	}

	return machine
}

func buildMachineOutput(machine Machine) machineOutput {
	out := machineOutput{
		APIVersion: machine.APIVersion,
		Kind:       machine.Kind,
		Spec:       nil,
	}

	spec := buildMachineSpecOutput(machine.Spec)
	if spec != nil {
		out.Spec = spec
	}

	return out
}

func buildMachineSpecOutput(spec Spec) *machineSpecOutput {
	out := &machineSpecOutput{
		Install: buildInstallSpecOutput(spec.Install),
		Disks:   buildDiskSpecOutputs(spec.Disks),
		Modules: spec.Modules,
	}

	if out.Install == nil && out.Disks == nil && len(out.Modules) == 0 {
		return nil
	}

	return out
}

func buildInstallSpecOutput(install InstallSpec) *installSpecOutput {
	out := installSpecOutput{
		SystemImage:   strings.TrimSpace(install.SystemImage),
		PrepareScript: strings.TrimSpace(install.PrepareScript),
		Installer:     strings.TrimSpace(install.Installer),
		MountRoot:     strings.TrimSpace(install.MountRoot),
	}

	if out == (installSpecOutput{}) {
		return nil
	}

	return &out
}

func buildDiskSpecOutputs(disks []DiskSpec) []diskSpecOutput {
	if len(disks) == 0 {
		return nil
	}

	out := make([]diskSpecOutput, 0, len(disks))

	for _, disk := range disks {
		converted := diskSpecOutput{
			Device:     disk.Device,
			Pool:       disk.Pool,
			Partitions: nil,
		}

		for _, partition := range disk.Partitions {
			converted.Partitions = append(converted.Partitions, partitionSpecOutput{
				Label:      partition.Label,
				Role:       string(partition.Role),
				Size:       partition.Size,
				Format:     partition.Format,
				Mountpoint: partition.Mountpoint,
			})
		}

		out = append(out, converted)
	}

	return out
}
