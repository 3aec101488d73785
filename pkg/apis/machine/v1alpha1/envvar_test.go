package v1alpha1_test

import (
	"testing"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/stretchr/testify/assert"
)

func TestMachineExpandEnvVars(t *testing.T) {
	t.Setenv("INSTALL_DISK", "/dev/nvme0n1")
	t.Setenv("SYSTEM_IMAGE", "/nix/store/abc-nixos-system")

	machine := v1alpha1.NewMachine()
	machine.Spec.Install.SystemImage = "${SYSTEM_IMAGE}"
	machine.Spec.Install.PrepareScript = "./partition-${INSTALL_DISK:-/dev/sda}.sh"
	machine.Spec.Disks = []v1alpha1.DiskSpec{
		{Device: "${INSTALL_DISK}", Pool: "${POOL_NAME:-rpool}"},
	}

	machine.ExpandEnvVars()

	assert.Equal(t, "/nix/store/abc-nixos-system", machine.Spec.Install.SystemImage)
	assert.Equal(t, "./partition-/dev/nvme0n1.sh", machine.Spec.Install.PrepareScript)
	assert.Equal(t, "/dev/nvme0n1", machine.Spec.Disks[0].Device)
	assert.Equal(t, "rpool", machine.Spec.Disks[0].Pool)
}

func TestMachineExpandEnvVarsLeavesPlainValues(t *testing.T) {
	t.Parallel()

	machine := v1alpha1.NewMachine()
	machine.Spec.Install.MountRoot = "/mnt"
	machine.Spec.Disks = []v1alpha1.DiskSpec{{Device: "/dev/sda", Pool: "rpool"}}

	machine.ExpandEnvVars()

	assert.Equal(t, "/mnt", machine.Spec.Install.MountRoot)
	assert.Equal(t, "/dev/sda", machine.Spec.Disks[0].Device)
	assert.Equal(t, "rpool", machine.Spec.Disks[0].Pool)
}
