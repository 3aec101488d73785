package v1alpha1

import (
	"fmt"
	"regexp"
)

// machineNameRegex matches DNS-1123 labels: lowercase alphanumeric with optional hyphens.
// Must start with a letter, end with alphanumeric, and be at most 63 characters.
var machineNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// poolNameRegex matches storage pool names: must begin with a letter, may
// contain lowercase alphanumerics, hyphens, and underscores.
var poolNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// MachineNameMaxLength is the maximum length for a machine name.
const MachineNameMaxLength = 63

// ValidateMachineName validates that a machine name is a valid hostname label.
// Machine names end up as hostnames and pool prefixes, which require DNS-1123
// labels (lowercase alphanumeric and dashes only).
//
// Returns nil if the name is valid, or an error describing the validation failure.
func ValidateMachineName(name string) error {
	if name == "" {
		return nil // Empty names are allowed (means use default)
	}

	if len(name) > MachineNameMaxLength {
		return fmt.Errorf(
			"%w: %q exceeds max %d characters (got %d)",
			ErrMachineNameTooLong, name, MachineNameMaxLength, len(name),
		)
	}

	if !machineNameRegex.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must be a DNS-1123 label "+
				"(lowercase letters, numbers, and hyphens; must start with a letter; "+
				"must not end with a hyphen)",
			ErrMachineNameInvalid, name,
		)
	}

	return nil
}

// ValidatePoolName validates that a storage pool name is usable as a pool
// identifier. Pool names are referenced in dataset paths and device nodes,
// so they stay restricted to a conservative label alphabet.
//
// Returns nil if the name is valid, or an error describing the validation failure.
func ValidatePoolName(name string) error {
	if name == "" {
		return nil // Empty names are allowed (means use the default pool)
	}

	if !poolNameRegex.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must start with a letter and contain only "+
				"lowercase letters, numbers, hyphens, and underscores",
			ErrPoolNameInvalid, name,
		)
	}

	return nil
}
