package configmanager

import (
	"reflect"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
)

// FieldSelector defines a field and its metadata for configuration management.
type FieldSelector[T any] struct {
	Selector     func(*T) any // Function that returns a pointer to the field
	Description  string       // Human-readable description for CLI flags
	DefaultValue any          // Default value for the field
}

// DefaultSystemImageFieldSelector creates a standard field selector for the system image.
func DefaultSystemImageFieldSelector() FieldSelector[v1alpha1.Machine] {
	return FieldSelector[v1alpha1.Machine]{
		Selector:    func(m *v1alpha1.Machine) any { return &m.Spec.Install.SystemImage },
		Description: "System store path or image reference to install",
	}
}

// DefaultPrepareScriptFieldSelector creates a standard field selector for the prepare script.
func DefaultPrepareScriptFieldSelector() FieldSelector[v1alpha1.Machine] {
	return FieldSelector[v1alpha1.Machine]{
		Selector:    func(m *v1alpha1.Machine) any { return &m.Spec.Install.PrepareScript },
		Description: "Partitioning script executed as the first install step",
	}
}

// DefaultInstallerFieldSelector creates a standard field selector for the installer binary.
func DefaultInstallerFieldSelector() FieldSelector[v1alpha1.Machine] {
	return FieldSelector[v1alpha1.Machine]{
		Selector:     func(m *v1alpha1.Machine) any { return &m.Spec.Install.Installer },
		Description:  "Installer binary to invoke",
		DefaultValue: v1alpha1.DefaultInstaller,
	}
}

// DefaultMountRootFieldSelector creates a standard field selector for the mount root.
func DefaultMountRootFieldSelector() FieldSelector[v1alpha1.Machine] {
	return FieldSelector[v1alpha1.Machine]{
		Selector:     func(m *v1alpha1.Machine) any { return &m.Spec.Install.MountRoot },
		Description:  "Mount point the target system is assembled under",
		DefaultValue: v1alpha1.DefaultMountRoot,
	}
}

// DefaultMachineFieldSelectors returns the field selectors shared by provisioning commands.
func DefaultMachineFieldSelectors() []FieldSelector[v1alpha1.Machine] {
	return []FieldSelector[v1alpha1.Machine]{
		DefaultSystemImageFieldSelector(),
		DefaultPrepareScriptFieldSelector(),
		DefaultInstallerFieldSelector(),
		DefaultMountRootFieldSelector(),
	}
}

// isFieldEmpty checks if a field pointer points to an empty/zero value.
func isFieldEmpty(fieldPtr any) bool {
	if fieldPtr == nil {
		return true
	}

	fieldVal := reflect.ValueOf(fieldPtr)
	if fieldVal.Kind() != reflect.Ptr || fieldVal.IsNil() {
		return true
	}

	fieldVal = fieldVal.Elem()

	return fieldVal.IsZero()
}

// setFieldValue assigns a default value through a field pointer, converting
// when the default's type differs but is compatible.
func setFieldValue(fieldPtr, value any) {
	if value == nil {
		return
	}

	fieldVal := reflect.ValueOf(fieldPtr)
	if fieldVal.Kind() != reflect.Ptr || fieldVal.IsNil() {
		return
	}

	target := fieldVal.Elem()
	newValue := reflect.ValueOf(value)

	switch {
	case newValue.Type().AssignableTo(target.Type()):
		target.Set(newValue)
	case newValue.Type().ConvertibleTo(target.Type()):
		target.Set(newValue.Convert(target.Type()))
	}
}
