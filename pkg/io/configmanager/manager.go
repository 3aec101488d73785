package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/metalstrap/metalstrap/pkg/fsutil"
	"github.com/metalstrap/metalstrap/pkg/utils/notify"
	"github.com/metalstrap/metalstrap/pkg/utils/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigManager implements configuration management for Machine configurations.
type ConfigManager struct {
	Viper           *viper.Viper
	Config          *v1alpha1.Machine
	Writer          io.Writer // Writer for output notifications
	fieldSelectors  []FieldSelector[v1alpha1.Machine]
	command         *cobra.Command // Associated Cobra command for flag introspection
	configLoaded    bool           // Track if config has been actually loaded
	configFileFound bool           // Track if a config file was found and read
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Timer enables timing output in notifications when provided.
	Timer timer.Timer
	// Silent suppresses all loading notifications when true.
	Silent bool
	// IgnoreConfigFile skips reading on-disk config files when true (flags/defaults only).
	IgnoreConfigFile bool
	// SkipValidation skips config validation when true.
	SkipValidation bool
}

// NewConfigManager creates a new configuration manager with the specified field selectors.
// Initializes Viper with all configuration including paths and environment handling.
func NewConfigManager(
	writer io.Writer,
	fieldSelectors ...FieldSelector[v1alpha1.Machine],
) *ConfigManager {
	return &ConfigManager{
		Viper:          InitializeViper(),
		Config:         v1alpha1.NewMachine(),
		Writer:         writer,
		fieldSelectors: fieldSelectors,
	}
}

// NewCommandConfigManager constructs a ConfigManager bound to the provided Cobra command.
// It registers the supplied field selectors, binds flags from struct fields, and writes
// output to the command's standard output writer.
func NewCommandConfigManager(
	cmd *cobra.Command,
	selectors []FieldSelector[v1alpha1.Machine],
) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)
	manager.command = cmd
	manager.AddFlagsFromFields(cmd)

	return manager
}

// SetConfigFile points the manager at an explicit config file instead of the
// default search path. The path may start with ~/.
func (m *ConfigManager) SetConfigFile(path string) {
	expanded, err := fsutil.ExpandHomePath(path)
	if err != nil {
		expanded = path
	}

	m.Viper.SetConfigFile(expanded)
}

// Load loads the configuration from files, environment variables, and flags.
// Returns the loaded config, either freshly loaded or previously cached, and
// nil config on error.
// Configuration priority: defaults < config file < environment variables < flags.
func (m *ConfigManager) Load(opts LoadOptions) (*v1alpha1.Machine, error) {
	if !opts.Silent {
		m.notifyLoadingStart()
	}

	if m.configLoaded {
		if !opts.Silent {
			m.notifyConfigReused()
		}

		return m.Config, nil
	}

	if !opts.Silent {
		m.notifyLoadingConfig()
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig(opts.Silent)
		if err != nil {
			return nil, err
		}
	}

	flagOverrides := m.captureChangedFlagValues()

	err := m.unmarshalAndApplyDefaults()
	if err != nil {
		return nil, err
	}

	err = m.applyFlagOverrides(flagOverrides)
	if err != nil {
		return nil, err
	}

	m.Config.ExpandEnvVars()

	if !opts.SkipValidation {
		err = m.validateConfig()
		if err != nil {
			return nil, err
		}
	}

	if !opts.Silent {
		m.notifyLoadingComplete(opts.Timer)
	}

	m.configLoaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false
		if !silent {
			m.notifyUsingDefaults()
		}
	} else {
		m.configFileFound = true
		if !silent {
			m.notifyConfigFound()
		}
	}

	return nil
}

func (m *ConfigManager) unmarshalAndApplyDefaults() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			partitionRoleDecodeHook(),
		)
	}

	// Reset TypeMeta fields only if a config file was found.
	// This allows validation to catch incorrect values from config files
	// while preserving defaults when loading from environment variables only.
	if m.configFileFound {
		m.Config.APIVersion = ""
		m.Config.Kind = ""
	}

	err := m.Viper.Unmarshal(m.Config, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = m.loadModulesVerbatim()
	if err != nil {
		return err
	}

	err = m.applyDiskDefaults()
	if err != nil {
		return err
	}

	// Apply field selector defaults for empty fields
	for _, fieldSelector := range m.fieldSelectors {
		fieldPtr := fieldSelector.Selector(m.Config)
		if fieldPtr != nil && isFieldEmpty(fieldPtr) {
			setFieldValue(fieldPtr, fieldSelector.DefaultValue)
		}
	}

	return nil
}

// partitionRoleDecodeHook parses partition roles case-insensitively, so
// "Boot" in a config file means the boot role rather than an invalid value.
func partitionRoleDecodeHook() mapstructure.DecodeHookFuncType {
	roleType := reflect.TypeOf(v1alpha1.PartitionRole(""))

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != roleType {
			return data, nil
		}

		raw, isString := data.(string)
		if !isString || raw == "" {
			return data, nil
		}

		var role v1alpha1.PartitionRole

		err := role.Set(raw)
		if err != nil {
			return nil, err
		}

		return role, nil
	}
}

func (m *ConfigManager) captureChangedFlagValues() map[string]string {
	if m.command == nil {
		return nil
	}

	flags := m.command.Flags()
	overrides := make(map[string]string)

	flags.Visit(func(f *pflag.Flag) {
		overrides[f.Name] = f.Value.String()
	})

	return overrides
}

func (m *ConfigManager) applyFlagOverrides(overrides map[string]string) error {
	if overrides == nil {
		return nil
	}

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		flagName := m.GenerateFlagName(fieldPtr)

		value, changed := overrides[flagName]
		if !changed {
			continue
		}

		err := setFieldValueFromFlag(fieldPtr, value)
		if err != nil {
			return fmt.Errorf("failed to apply flag override for %s: %w", flagName, err)
		}
	}

	return nil
}

func (m *ConfigManager) notifyLoadingStart() {
	notify.WriteMessage(notify.Message{
		Type:    notify.TitleType,
		Content: "Load config...",
		Emoji:   "⏳",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyConfigReused() {
	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "config already loaded, reusing existing config",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyLoadingConfig() {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "loading machine config",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyUsingDefaults() {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "using default config",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyConfigFound() {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "'%s' found",
		Args:    []any{m.Viper.ConfigFileUsed()},
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyLoadingComplete(tmr timer.Timer) {
	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "config loaded",
		Timer:   tmr,
		Writer:  m.Writer,
	})
}
