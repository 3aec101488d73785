package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NewMachine creates a new Machine instance with minimal required structure.
// All default values are handled by the configuration system via field selectors.
func NewMachine() *Machine {
	return &Machine{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewMachineSpec(),
	}
}

// NewMachineSpec creates a new Spec with default values.
func NewMachineSpec() Spec {
	return Spec{
		Install: NewInstallSpec(),
		Disks:   nil,
		Modules: nil,
	}
}

// NewInstallSpec creates a new InstallSpec with default values.
func NewInstallSpec() InstallSpec {
	return InstallSpec{
		SystemImage:   "",
		PrepareScript: "",
		Installer:     "",
		MountRoot:     "",
	}
}

// NewDiskSpec creates a new DiskSpec for a device with the default pool.
func NewDiskSpec(device string) DiskSpec {
	return DiskSpec{
		Device:     device,
		Pool:       "",
		Partitions: nil,
	}
}
