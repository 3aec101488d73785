package v1alpha1

import "errors"

// ErrInvalidPartitionRole is returned when an invalid partition role is specified.
var ErrInvalidPartitionRole = errors.New("invalid partition role")

// ErrMachineNameTooLong is returned when the machine name exceeds the maximum length.
var ErrMachineNameTooLong = errors.New("machine name is too long")

// ErrMachineNameInvalid is returned when the machine name is not a valid hostname label.
var ErrMachineNameInvalid = errors.New("machine name is invalid")

// ErrPoolNameInvalid is returned when a storage pool name is not a valid pool identifier.
var ErrPoolNameInvalid = errors.New("pool name is invalid")
