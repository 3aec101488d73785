package configmanager

import (
	"strings"

	"github.com/spf13/viper"
)

// InitializeViper creates a Viper instance configured for machine configs:
// machine.yaml in the working directory, METALSTRAP_ environment variables,
// and key normalisation shared with flag names.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName("machine")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")

	viperInstance.SetEnvPrefix("METALSTRAP")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperInstance.AutomaticEnv()

	// Environment overrides only apply to keys viper already knows about,
	// so the install fields are bound explicitly.
	for _, key := range []string{
		"spec.install.systemimage",
		"spec.install.preparescript",
		"spec.install.installer",
		"spec.install.mountroot",
	} {
		viperInstance.MustBindEnv(key)
	}

	return viperInstance
}
