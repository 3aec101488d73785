package configmanager

import (
	"fmt"
	"os"

	"github.com/metalstrap/metalstrap/pkg/utils/envvar"
	yaml "gopkg.in/yaml.v3"
)

// moduleDocument mirrors the slice of a machine config file that carries the
// free-form module options.
type moduleDocument struct {
	Spec struct {
		Modules map[string]any `yaml:"modules"`
	} `yaml:"spec"`
}

// loadModulesVerbatim re-reads the module options straight from the config
// file. Viper lowercases every key it touches, which corrupts case-sensitive
// option paths such as networking.hostName, so the modules subtree bypasses
// Viper entirely.
func (m *ConfigManager) loadModulesVerbatim() error {
	if !m.configFileFound {
		return nil
	}

	data, err := os.ReadFile(m.Viper.ConfigFileUsed())
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var doc moduleDocument

	err = yaml.Unmarshal(envvar.ExpandBytes(data), &doc)
	if err != nil {
		return fmt.Errorf("failed to parse module options: %w", err)
	}

	// The config file is the sole source of module options, so the verbatim
	// subtree replaces whatever Viper decoded with lowercased keys.
	m.Config.Spec.Modules = doc.Spec.Modules

	return nil
}
