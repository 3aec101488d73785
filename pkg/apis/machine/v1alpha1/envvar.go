package v1alpha1

import "github.com/metalstrap/metalstrap/pkg/utils/envvar"

// ExpandEnvVars expands environment variable placeholders in all string fields
// of the machine configuration. This includes image references, script paths,
// and device paths.
//
// Placeholders use the format ${VAR_NAME}. If a referenced environment variable
// is not set, the placeholder is replaced with an empty string.
//
// This method should be called after unmarshaling the configuration so device
// selection can be parameterized per machine, e.g. device: ${INSTALL_DISK}.
func (m *Machine) ExpandEnvVars() {
	m.expandInstallSpec()
	m.expandDiskSpecs()
}

func (m *Machine) expandInstallSpec() {
	install := &m.Spec.Install

	install.SystemImage = envvar.Expand(install.SystemImage)
	install.PrepareScript = envvar.Expand(install.PrepareScript)
	install.Installer = envvar.Expand(install.Installer)
	install.MountRoot = envvar.Expand(install.MountRoot)
}

func (m *Machine) expandDiskSpecs() {
	for index := range m.Spec.Disks {
		disk := &m.Spec.Disks[index]

		disk.Device = envvar.Expand(disk.Device)
		disk.Pool = envvar.Expand(disk.Pool)
	}
}
