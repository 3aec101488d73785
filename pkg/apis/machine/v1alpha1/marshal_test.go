package v1alpha1_test

import (
	"testing"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestMarshalEmptyMachineOmitsSpec(t *testing.T) {
	t.Parallel()

	machine := v1alpha1.NewMachine()

	out, err := yaml.Marshal(machine)

	require.NoError(t, err)
	assert.Equal(t, "apiVersion: metalstrap.dev/v1alpha1\nkind: Machine\n", string(out))
}

func TestMarshalPrunesDefaultValues(t *testing.T) {
	t.Parallel()

	machine := v1alpha1.NewMachine()
	machine.Spec.Install.SystemImage = "/nix/store/abc-nixos-system"
	machine.Spec.Install.Installer = v1alpha1.DefaultInstaller
	machine.Spec.Install.MountRoot = v1alpha1.DefaultMountRoot
	machine.Spec.Disks = []v1alpha1.DiskSpec{
		{Device: "/dev/sda", Pool: v1alpha1.DefaultPool},
	}

	out, err := yaml.Marshal(machine)

	require.NoError(t, err)
	assert.Contains(t, string(out), "systemImage: /nix/store/abc-nixos-system")
	assert.Contains(t, string(out), "device: /dev/sda")
	assert.NotContains(t, string(out), "installer:")
	assert.NotContains(t, string(out), "mountRoot:")
	assert.NotContains(t, string(out), "pool:")
}

func TestMarshalKeepsNonDefaultValues(t *testing.T) {
	t.Parallel()

	machine := v1alpha1.NewMachine()
	machine.Spec.Install.Installer = "my-install"
	machine.Spec.Install.MountRoot = "/target"
	machine.Spec.Disks = []v1alpha1.DiskSpec{
		{
			Device: "/dev/nvme0n1",
			Pool:   "tank",
			Partitions: []v1alpha1.PartitionSpec{
				{Label: "ESP", Role: v1alpha1.PartitionRoleBoot, Size: "1G"},
			},
		},
	}

	out, err := yaml.Marshal(machine)

	require.NoError(t, err)
	assert.Contains(t, string(out), "installer: my-install")
	assert.Contains(t, string(out), "mountRoot: /target")
	assert.Contains(t, string(out), "pool: tank")
	assert.Contains(t, string(out), "role: boot")
}

func TestMarshalCarriesModulesVerbatim(t *testing.T) {
	t.Parallel()

	machine := v1alpha1.NewMachine()
	machine.Spec.Modules = map[string]any{
		"networking": map[string]any{"hostName": "edge-01"},
	}

	out, err := yaml.Marshal(machine)

	require.NoError(t, err)
	assert.Contains(t, string(out), "modules:")
	assert.Contains(t, string(out), "hostName: edge-01")
}

func TestUnmarshalRoundTrip(t *testing.T) {
	t.Parallel()

	source := `apiVersion: metalstrap.dev/v1alpha1
kind: Machine
spec:
  install:
    systemImage: /nix/store/abc-nixos-system
    prepareScript: ./partition.sh
  disks:
    - device: /dev/sda
      partitions:
        - label: ESP
          role: boot
          size: 512M
  modules:
    time:
      timeZone: UTC
`

	var machine v1alpha1.Machine

	require.NoError(t, yaml.Unmarshal([]byte(source), &machine))

	assert.Equal(t, "Machine", machine.Kind)
	assert.Equal(t, "./partition.sh", machine.Spec.Install.PrepareScript)
	require.Len(t, machine.Spec.Disks, 1)
	require.Len(t, machine.Spec.Disks[0].Partitions, 1)
	assert.Equal(t, v1alpha1.PartitionRoleBoot, machine.Spec.Disks[0].Partitions[0].Role)
	assert.Equal(t, map[string]any{"time": map[string]any{"timeZone": "UTC"}}, machine.Spec.Modules)
}
