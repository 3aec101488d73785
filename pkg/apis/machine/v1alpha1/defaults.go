package v1alpha1

const (
	// DefaultInstaller is the installer binary invoked by the install step.
	DefaultInstaller = "nixos-install"
	// DefaultMountRoot is the mount point the target system is assembled under.
	DefaultMountRoot = "/mnt"
	// DefaultPool is the default storage pool name.
	DefaultPool = "rpool"
	// DefaultBootSize is the default size for the boot partition.
	DefaultBootSize = "512M"
	// DefaultBootFormat is the default filesystem for the boot partition.
	DefaultBootFormat = "vfat"
	// DefaultBootMountpoint is the default mount point for the boot partition.
	DefaultBootMountpoint = "/boot"
	// DefaultPoolSize claims the remainder of the disk for the pool partition.
	DefaultPoolSize = "100%"
)

// DefaultPartitions returns the boot-plus-pool partition scheme applied when
// a disk declares no partitions of its own.
func DefaultPartitions() []PartitionSpec {
	return []PartitionSpec{
		{
			Label:      "ESP",
			Role:       PartitionRoleBoot,
			Size:       DefaultBootSize,
			Format:     DefaultBootFormat,
			Mountpoint: DefaultBootMountpoint,
		},
		{
			Label: "zroot",
			Role:  PartitionRolePool,
			Size:  DefaultPoolSize,
		},
	}
}
