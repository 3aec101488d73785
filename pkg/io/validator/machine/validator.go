// Package machine provides validation for Machine configurations.
package machine

import (
	"fmt"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/metalstrap/metalstrap/pkg/io/validator"
)

// Validator validates Machine configurations before any provisioning
// artifact is generated from them.
type Validator struct{}

var _ validator.Validator[*v1alpha1.Machine] = (*Validator)(nil)

// NewValidator creates a new Machine configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the machine configuration for problems that would make
// provisioning fail or produce a broken system.
func (v *Validator) Validate(config *v1alpha1.Machine) *validator.ValidationResult {
	result := validator.NewValidationResult("machine")

	if config == nil {
		result.AddError(validator.ValidationError{
			Field:   "config",
			Message: "configuration is nil",
		})

		return result
	}

	validator.ValidateMetadata(
		config.Kind,
		config.APIVersion,
		v1alpha1.Kind,
		v1alpha1.APIVersion,
		result,
	)

	v.validateInstall(config.Spec.Install, result)
	v.validateDisks(config.Spec.Disks, result)

	return result
}

// validateInstall flags install settings that only fail later, at emission time.
func (v *Validator) validateInstall(install v1alpha1.InstallSpec, result *validator.ValidationResult) {
	if install.SystemImage == "" {
		result.AddWarning(validator.ValidationError{
			Field:         "spec.install.systemImage",
			Message:       "no system image set; script and image generation will fail until one is provided",
			FixSuggestion: "Set spec.install.systemImage to the system store path to install",
		})
	}

	if install.PrepareScript == "" {
		result.AddWarning(validator.ValidationError{
			Field:         "spec.install.prepareScript",
			Message:       "no prepare script set; script and image generation will fail until one is provided",
			FixSuggestion: "Set spec.install.prepareScript to the generated partitioning script",
		})
	}
}

func (v *Validator) validateDisks(disks []v1alpha1.DiskSpec, result *validator.ValidationResult) {
	if len(disks) == 0 {
		result.AddWarning(validator.ValidationError{
			Field:         "spec.disks",
			Message:       "no disks declared; a disk layout cannot be generated",
			FixSuggestion: "Add a disk with the target block device, e.g. '/dev/sda'",
		})

		return
	}

	seenDevices := make(map[string]bool, len(disks))

	for diskIndex, disk := range disks {
		fieldPrefix := fmt.Sprintf("spec.disks[%d]", diskIndex)

		v.validateDiskDevice(disk.Device, fieldPrefix, seenDevices, result)
		v.validateDiskPool(disk.Pool, fieldPrefix, result)
		v.validatePartitions(disk.Partitions, fieldPrefix, result)
	}
}

func (v *Validator) validateDiskDevice(
	device, fieldPrefix string,
	seenDevices map[string]bool,
	result *validator.ValidationResult,
) {
	if device == "" {
		result.AddError(validator.ValidationError{
			Field:         fieldPrefix + ".device",
			Message:       "disk device is required",
			FixSuggestion: "Set device to the block device path, e.g. '/dev/sda'",
		})

		return
	}

	if seenDevices[device] {
		result.AddError(validator.ValidationError{
			Field:         fieldPrefix + ".device",
			Message:       "disk device is declared more than once",
			CurrentValue:  device,
			FixSuggestion: "Declare each block device at most once",
		})
	}

	seenDevices[device] = true
}

func (v *Validator) validateDiskPool(
	pool, fieldPrefix string,
	result *validator.ValidationResult,
) {
	if err := v1alpha1.ValidatePoolName(pool); err != nil {
		result.AddError(validator.ValidationError{
			Field:         fieldPrefix + ".pool",
			Message:       "pool name is not a valid pool identifier",
			CurrentValue:  pool,
			FixSuggestion: "Use lowercase letters, numbers, hyphens, and underscores, starting with a letter",
		})
	}
}

func (v *Validator) validatePartitions(
	partitions []v1alpha1.PartitionSpec,
	fieldPrefix string,
	result *validator.ValidationResult,
) {
	seenLabels := make(map[string]bool, len(partitions))

	for partitionIndex, partition := range partitions {
		partitionField := fmt.Sprintf("%s.partitions[%d]", fieldPrefix, partitionIndex)

		if partition.Label == "" {
			result.AddError(validator.ValidationError{
				Field:         partitionField + ".label",
				Message:       "partition label is required",
				FixSuggestion: "Set a GPT partition label unique on this disk, e.g. 'ESP'",
			})
		} else if seenLabels[partition.Label] {
			result.AddError(validator.ValidationError{
				Field:         partitionField + ".label",
				Message:       "partition label is declared more than once on this disk",
				CurrentValue:  partition.Label,
				FixSuggestion: "Give each partition on a disk a unique label",
			})
		}

		seenLabels[partition.Label] = true

		v.validatePartitionRole(partition.Role, partitionField, result)

		if partition.Size == "" {
			result.AddError(validator.ValidationError{
				Field:         partitionField + ".size",
				Message:       "partition size is required",
				FixSuggestion: "Set size, e.g. '512M', '8G', or '100%' for the rest of the disk",
			})
		}
	}
}

func (v *Validator) validatePartitionRole(
	role v1alpha1.PartitionRole,
	partitionField string,
	result *validator.ValidationResult,
) {
	if role == "" {
		result.AddError(validator.ValidationError{
			Field:         partitionField + ".role",
			Message:       "partition role is required",
			ExpectedValue: "boot, pool, or swap",
			FixSuggestion: "Set role to one of 'boot', 'pool', or 'swap'",
		})

		return
	}

	if !role.IsValid() {
		result.AddError(validator.ValidationError{
			Field:         partitionField + ".role",
			Message:       "partition role is not supported",
			CurrentValue:  role.String(),
			ExpectedValue: "boot, pool, or swap",
			FixSuggestion: "Set role to one of 'boot', 'pool', or 'swap'",
		})
	}
}
