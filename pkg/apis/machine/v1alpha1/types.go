package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for metalstrap.
	Group = "metalstrap.dev"
	// Version is the API version for metalstrap.
	Version = "v1alpha1"
	// Kind is the kind for metalstrap machines.
	Kind = "Machine"
	// APIVersion is the full API version for metalstrap.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Machine represents one provisionable machine: API metadata plus the desired
// installation state. It contains TypeMeta for API versioning information and
// Spec for the machine specification.
type Machine struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// Spec defines the desired state of a provisioned machine.
type Spec struct {
	Install InstallSpec `json:"install,omitzero"`
	Disks   []DiskSpec  `json:"disks,omitzero"`

	// Modules is the free-form system configuration carried through the
	// layering engine. Keys are dotted key-paths or nested mappings; values
	// are passed to the target system builder untouched.
	Modules map[string]any `json:"modules,omitzero"`
}

// InstallSpec defines how the installation itself runs.
type InstallSpec struct {
	// SystemImage is the store path or image reference of the system to
	// install. Required for script and image emission.
	SystemImage string `json:"systemImage,omitzero"`
	// PrepareScript is the partitioning tool's generated preparation script,
	// executed verbatim as the first pipeline step.
	PrepareScript string `json:"prepareScript,omitzero"`
	// Installer is the installer binary to invoke.
	// Defaults to "nixos-install".
	Installer string `default:"nixos-install" json:"installer,omitzero"`
	// MountRoot is the mount point the target system is assembled under.
	// Defaults to "/mnt".
	MountRoot string `default:"/mnt"          json:"mountRoot,omitzero"`
}

// DiskSpec describes one physical disk and the pool carved out of it.
type DiskSpec struct {
	// Device is the block device path, e.g. /dev/sda or /dev/nvme0n1.
	Device string `json:"device,omitzero"`
	// Pool is the storage pool created on the disk's pool partition.
	// Defaults to "rpool".
	Pool string `default:"rpool" json:"pool,omitzero"`
	// Partitions lists the partitions in on-disk order. When empty the
	// default boot-plus-pool scheme is generated.
	Partitions []PartitionSpec `json:"partitions,omitzero"`
}

// PartitionSpec describes one partition on a disk.
type PartitionSpec struct {
	// Label is the GPT partition label, unique per disk.
	Label string `json:"label,omitzero"`
	// Role selects what the partition holds.
	Role PartitionRole `json:"role,omitzero"`
	// Size is the partition size, e.g. "512M", "8G", or "100%" for the
	// remainder of the disk.
	Size string `json:"size,omitzero"`
	// Format is the filesystem for boot partitions. Defaults to "vfat".
	Format string `json:"format,omitzero"`
	// Mountpoint is where boot partitions are mounted. Defaults to "/boot".
	Mountpoint string `json:"mountpoint,omitzero"`
}
