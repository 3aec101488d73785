// Package sanitizer blanks machine-captured hardware state from a resolved
// configuration so it can be transplanted onto different hardware.
//
// Hardware scans bake the scanned machine's filesystems, network interfaces,
// and LUKS devices into the captured configuration. None of those survive a
// move to a new box, so the sanitizer force-replaces each of them with an
// empty mapping. The blanking layers never inspect the existing values, which
// makes sanitizing idempotent, and a later equal-priority layer (such as a
// generated mount plan) can still supersede the blank.
package sanitizer

import "github.com/metalstrap/metalstrap/pkg/layer"

// LayerName identifies the blanking layer in diagnostics.
const LayerName = "sanitize"

const (
	// FileSystemsPath is the key-path of the captured filesystem table.
	FileSystemsPath = "fileSystems"
	// NetworkInterfacesPath is the key-path of the captured interface table.
	NetworkInterfacesPath = "networking.interfaces"
	// LUKSDevicesPath is the key-path of the captured LUKS device table.
	LUKSDevicesPath = "boot.initrd.luks.devices"
)

// BlankedPaths lists the key-paths whose captured values never transfer to
// new hardware.
func BlankedPaths() []string {
	return []string{
		FileSystemsPath,
		NetworkInterfacesPath,
		LUKSDevicesPath,
	}
}

// Layer returns the replace-mode layer that blanks every captured path at
// force priority.
func Layer() layer.Layer {
	values := map[string]any{}
	for _, keyPath := range BlankedPaths() {
		values[keyPath] = map[string]any{}
	}

	return layer.NewReplace(LayerName, layer.PriorityForce, values)
}

// Apply resolves the configuration with the blanking layer appended.
func Apply(resolved *layer.Resolved) *layer.Resolved {
	return resolved.Extend(Layer())
}
