package configmanager

import (
	"fmt"

	"dario.cat/mergo"
	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
)

// applyDiskDefaults fills empty fields on every declared disk. Field selectors
// address a single field and cannot reach into slice elements, so the per-disk
// defaults are merged here instead.
func (m *ConfigManager) applyDiskDefaults() error {
	defaults := v1alpha1.DiskSpec{
		Pool: v1alpha1.DefaultPool,
	}

	for index := range m.Config.Spec.Disks {
		err := mergo.Merge(&m.Config.Spec.Disks[index], defaults)
		if err != nil {
			return fmt.Errorf("failed to apply disk defaults: %w", err)
		}
	}

	return nil
}
