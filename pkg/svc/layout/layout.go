// Package layout turns disk specifications into configuration layers: a
// disko-style device tree describing partitions and pools, and the mount plan
// the installed system boots with.
//
// The mount plan is a replace-mode layer at force priority, so it supersedes
// both captured filesystem state and the sanitizer's blank. The device tree
// merges at force priority so user configuration cannot silently move a
// partition.
package layout

import (
	"fmt"
	"strings"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/metalstrap/metalstrap/pkg/layer"
)

// Layer names used in diagnostics and warnings.
const (
	// DeviceLayerName identifies the disko device tree layer.
	DeviceLayerName = "disk-layout"
	// MountLayerName identifies the generated mount plan layer.
	MountLayerName = "mount-plan"
)

// rootDataset is the dataset carrying the root filesystem on the first pool.
const rootDataset = "root"

// dataDataset is the dataset carved out of every additional pool.
const dataDataset = "data"

// Generator builds disk layout layers from disk specifications.
type Generator interface {
	// Generate returns the device tree layer followed by the mount plan
	// layer for the given disks.
	Generate(disks []v1alpha1.DiskSpec) ([]layer.Layer, error)
}

// DiskLayoutGenerator is the default [Generator].
type DiskLayoutGenerator struct{}

// NewGenerator creates a new DiskLayoutGenerator.
func NewGenerator() *DiskLayoutGenerator {
	return &DiskLayoutGenerator{}
}

var _ Generator = (*DiskLayoutGenerator)(nil)

// Generate validates the disk specifications and produces the device tree and
// mount plan layers. Disks without partitions get the default boot-plus-pool
// scheme. Returns [ErrInvalidDiskSpec] when the specification cannot produce
// a coherent layout.
func (g *DiskLayoutGenerator) Generate(disks []v1alpha1.DiskSpec) ([]layer.Layer, error) {
	normalized, err := normalizeDisks(disks)
	if err != nil {
		return nil, err
	}

	deviceTree := map[string]any{}
	mounts := map[string]any{}

	pools := poolOrder(normalized)

	for _, disk := range normalized {
		deviceTree[DiskKey(disk.Device)] = buildDiskEntry(disk)

		for index, partition := range disk.Partitions {
			if partition.Role != v1alpha1.PartitionRoleBoot {
				continue
			}

			mounts[partition.Mountpoint] = map[string]any{
				"device": partitionDevice(disk.Device, index+1),
				"fsType": partition.Format,
			}
		}
	}

	layers := []layer.Layer{
		layer.NewWithPriority(DeviceLayerName, layer.PriorityForce, map[string]any{
			"disko": map[string]any{
				"devices": map[string]any{"disk": deviceTree},
			},
		}),
	}

	// One layer per pool keeps pool enumeration in declaration order; keys
	// assigned inside a single mapping would resolve lexicographically.
	for index, pool := range pools {
		entry, mountpoint, dataset := buildPoolEntry(pool, index == 0)

		if _, taken := mounts[mountpoint]; taken {
			return nil, fmt.Errorf(
				"%w: mountpoint %q declared twice", ErrInvalidDiskSpec, mountpoint,
			)
		}

		mounts[mountpoint] = map[string]any{
			"device": pool + "/" + dataset,
			"fsType": "zfs",
		}

		layers = append(layers, layer.NewWithPriority(
			fmt.Sprintf("%s-%s", DeviceLayerName, pool),
			layer.PriorityForce,
			map[string]any{
				"disko": map[string]any{
					"devices": map[string]any{"zpool": map[string]any{pool: entry}},
				},
			},
		))
	}

	layers = append(layers, layer.NewReplace(MountLayerName, layer.PriorityForce, map[string]any{
		"fileSystems": mounts,
	}))

	return layers, nil
}

// normalizeDisks applies defaults and validates the specification.
func normalizeDisks(disks []v1alpha1.DiskSpec) ([]v1alpha1.DiskSpec, error) {
	if len(disks) == 0 {
		return nil, fmt.Errorf("%w: no disks declared", ErrInvalidDiskSpec)
	}

	seenDevices := map[string]bool{}
	seenMountpoints := map[string]bool{}

	normalized := make([]v1alpha1.DiskSpec, 0, len(disks))

	for _, disk := range disks {
		if disk.Device == "" {
			return nil, fmt.Errorf("%w: disk device is required", ErrInvalidDiskSpec)
		}

		if seenDevices[disk.Device] {
			return nil, fmt.Errorf("%w: device %q declared twice", ErrInvalidDiskSpec, disk.Device)
		}

		seenDevices[disk.Device] = true

		if disk.Pool == "" {
			disk.Pool = v1alpha1.DefaultPool
		}

		if len(disk.Partitions) == 0 {
			disk.Partitions = v1alpha1.DefaultPartitions()
		}

		validated, err := normalizePartitions(disk, seenMountpoints)
		if err != nil {
			return nil, err
		}

		disk.Partitions = validated
		normalized = append(normalized, disk)
	}

	return normalized, nil
}

//nolint:cyclop // partition validation is a flat sequence of structural checks
func normalizePartitions(
	disk v1alpha1.DiskSpec,
	seenMountpoints map[string]bool,
) ([]v1alpha1.PartitionSpec, error) {
	seenLabels := map[string]bool{}
	normalized := make([]v1alpha1.PartitionSpec, 0, len(disk.Partitions))

	for _, partition := range disk.Partitions {
		if partition.Label == "" {
			return nil, fmt.Errorf(
				"%w: partition on %q needs a label", ErrInvalidDiskSpec, disk.Device,
			)
		}

		if seenLabels[partition.Label] {
			return nil, fmt.Errorf(
				"%w: partition label %q declared twice on %q",
				ErrInvalidDiskSpec, partition.Label, disk.Device,
			)
		}

		seenLabels[partition.Label] = true

		if !partition.Role.IsValid() {
			return nil, fmt.Errorf(
				"%w: partition %q on %q has unknown role %q",
				ErrInvalidDiskSpec, partition.Label, disk.Device, partition.Role.String(),
			)
		}

		if partition.Size == "" {
			return nil, fmt.Errorf(
				"%w: partition %q on %q needs a size",
				ErrInvalidDiskSpec, partition.Label, disk.Device,
			)
		}

		if partition.Role == v1alpha1.PartitionRoleBoot {
			if partition.Format == "" {
				partition.Format = v1alpha1.DefaultBootFormat
			}

			if partition.Mountpoint == "" {
				partition.Mountpoint = v1alpha1.DefaultBootMountpoint
			}

			if seenMountpoints[partition.Mountpoint] {
				return nil, fmt.Errorf(
					"%w: mountpoint %q declared twice",
					ErrInvalidDiskSpec, partition.Mountpoint,
				)
			}

			seenMountpoints[partition.Mountpoint] = true
		}

		normalized = append(normalized, partition)
	}

	return normalized, nil
}

// poolOrder returns the pool names in declaration order, erroring on
// duplicates across disks via normalizeDisks' device checks earlier. A pool
// is declared by the first disk that carries a pool-role partition for it.
func poolOrder(disks []v1alpha1.DiskSpec) []string {
	seen := map[string]bool{}
	pools := []string{}

	for _, disk := range disks {
		for _, partition := range disk.Partitions {
			if partition.Role != v1alpha1.PartitionRolePool || seen[disk.Pool] {
				continue
			}

			seen[disk.Pool] = true
			pools = append(pools, disk.Pool)
		}
	}

	return pools
}

func buildDiskEntry(disk v1alpha1.DiskSpec) map[string]any {
	partitions := map[string]any{}

	for _, partition := range disk.Partitions {
		partitions[partition.Label] = buildPartitionEntry(disk.Pool, partition)
	}

	return map[string]any{
		"type":   "disk",
		"device": disk.Device,
		"content": map[string]any{
			"type":       "gpt",
			"partitions": partitions,
		},
	}
}

func buildPartitionEntry(pool string, partition v1alpha1.PartitionSpec) map[string]any {
	switch partition.Role {
	case v1alpha1.PartitionRoleBoot:
		return map[string]any{
			"size": partition.Size,
			"type": "EF00",
			"content": map[string]any{
				"type":       "filesystem",
				"format":     partition.Format,
				"mountpoint": partition.Mountpoint,
			},
		}
	case v1alpha1.PartitionRolePool:
		return map[string]any{
			"size": partition.Size,
			"content": map[string]any{
				"type": "zfs",
				"pool": pool,
			},
		}
	case v1alpha1.PartitionRoleSwap:
		return map[string]any{
			"size":    partition.Size,
			"content": map[string]any{"type": "swap"},
		}
	default:
		return map[string]any{"size": partition.Size}
	}
}

// buildPoolEntry returns the zpool entry plus the mountpoint and dataset the
// mount plan references. The first pool carries the root filesystem; every
// further pool is mounted under its own name.
func buildPoolEntry(pool string, isRoot bool) (map[string]any, string, string) {
	dataset := rootDataset
	mountpoint := "/"

	if !isRoot {
		dataset = dataDataset
		mountpoint = "/" + pool
	}

	return map[string]any{
		"type": "zpool",
		"rootFsOptions": map[string]any{
			"compression": "zstd",
			"mountpoint":  "none",
		},
		"datasets": map[string]any{
			dataset: map[string]any{
				"type":       "zfs_fs",
				"mountpoint": mountpoint,
			},
		},
	}, mountpoint, dataset
}

// DiskKey derives the disko disk attribute name from the device path. The
// pipeline builder uses the same derivation to check that a resolved
// configuration actually carries a layout for the requested device.
func DiskKey(device string) string {
	trimmed := strings.TrimSuffix(device, "/")
	if index := strings.LastIndex(trimmed, "/"); index >= 0 {
		trimmed = trimmed[index+1:]
	}

	if trimmed == "" {
		return device
	}

	return trimmed
}

// partitionDevice returns the kernel name of the numbered partition on a
// device, following udev conventions: /dev/sda1, /dev/nvme0n1p1, and
// /dev/disk/by-id/...-part1.
func partitionDevice(device string, number int) string {
	if strings.Contains(device, "/by-id/") || strings.Contains(device, "/by-path/") {
		return fmt.Sprintf("%s-part%d", device, number)
	}

	if device != "" && device[len(device)-1] >= '0' && device[len(device)-1] <= '9' {
		return fmt.Sprintf("%sp%d", device, number)
	}

	return fmt.Sprintf("%s%d", device, number)
}
