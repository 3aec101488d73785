package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// --- Enum Interface ---

// EnumValuer is implemented by string-based enum types to provide their valid values.
// The schema generator uses this interface to automatically discover enum constraints.
type EnumValuer interface {
	// ValidValues returns all valid string values for this enum type.
	ValidValues() []string
}

// --- Partition Role Types ---

// PartitionRole defines what a partition holds.
type PartitionRole string

const (
	// PartitionRoleBoot is the EFI system partition carrying the bootloader.
	PartitionRoleBoot PartitionRole = "boot"
	// PartitionRolePool is the partition backing the machine's storage pool.
	PartitionRolePool PartitionRole = "pool"
	// PartitionRoleSwap is a swap partition.
	PartitionRoleSwap PartitionRole = "swap"
)

// Set for PartitionRole (pflag.Value interface).
func (r *PartitionRole) Set(value string) error {
	for _, role := range ValidPartitionRoles() {
		if strings.EqualFold(value, string(role)) {
			*r = role

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s)",
		ErrInvalidPartitionRole,
		value,
		PartitionRoleBoot,
		PartitionRolePool,
		PartitionRoleSwap,
	)
}

// IsValid checks if the partition role value is supported.
func (r *PartitionRole) IsValid() bool {
	return slices.Contains(ValidPartitionRoles(), *r)
}

// String returns the string representation of the PartitionRole.
func (r *PartitionRole) String() string {
	return string(*r)
}

// Type returns the type of the PartitionRole.
func (r *PartitionRole) Type() string {
	return "PartitionRole"
}

// Default returns the default value for PartitionRole (pool).
func (r *PartitionRole) Default() any {
	return PartitionRolePool
}

// ValidValues returns all valid PartitionRole values as strings.
func (r *PartitionRole) ValidValues() []string {
	return []string{
		string(PartitionRoleBoot),
		string(PartitionRolePool),
		string(PartitionRoleSwap),
	}
}

// ValidPartitionRoles returns supported partition role values.
func ValidPartitionRoles() []PartitionRole {
	return []PartitionRole{
		PartitionRoleBoot,
		PartitionRolePool,
		PartitionRoleSwap,
	}
}
