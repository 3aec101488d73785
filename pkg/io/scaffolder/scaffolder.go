// Package scaffolder generates starter metalstrap project files.
package scaffolder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	pkgio "github.com/metalstrap/metalstrap/pkg/io"
	"github.com/metalstrap/metalstrap/pkg/io/generator"
	yamlgenerator "github.com/metalstrap/metalstrap/pkg/io/generator/yaml"
	"github.com/metalstrap/metalstrap/pkg/io/layerfile"
	"github.com/metalstrap/metalstrap/pkg/utils/notify"
)

const (
	// MachineConfigFile is the filename for the machine configuration.
	MachineConfigFile = "machine.yaml"

	// OverlayDir is the directory holding overlay layer files.
	OverlayDir = "layers"

	// OverlayFile is the filename for the starter overlay layer.
	OverlayFile = "site.yaml"
)

var (
	// ErrMachineConfigGeneration wraps failures when creating machine.yaml.
	ErrMachineConfigGeneration = errors.New("failed to generate machine configuration")

	// ErrOverlayGeneration wraps failures when creating the starter overlay layer.
	ErrOverlayGeneration = errors.New("failed to generate overlay layer")
)

// Scaffolder generates the metalstrap project files: a machine.yaml seeded
// with sensible defaults and a starter overlay layer under layers/.
type Scaffolder struct {
	MachineConfig        *v1alpha1.Machine
	MachineName          string
	MachineYAMLGenerator generator.Generator[*v1alpha1.Machine, yamlgenerator.Options]
	OverlayGenerator     generator.Generator[*layerfile.Overlay, yamlgenerator.Options]
	Writer               io.Writer
}

// NewScaffolder creates a new Scaffolder for the provided machine configuration.
// The machine name, when non-empty, is sanitized to a DNS label and becomes
// the scaffolded networking.hostName module value.
func NewScaffolder(cfg *v1alpha1.Machine, machineName string, writer io.Writer) *Scaffolder {
	return &Scaffolder{
		MachineConfig:        cfg,
		MachineName:          machineName,
		MachineYAMLGenerator: yamlgenerator.NewYAMLGenerator[*v1alpha1.Machine](),
		OverlayGenerator:     yamlgenerator.NewYAMLGenerator[*layerfile.Overlay](),
		Writer:               writer,
	}
}

// Scaffold generates project files into the output directory.
//
// Existing files are skipped unless force is set; forced overwrites bump the
// file's modification time past the previous one so file watchers notice.
func (s *Scaffolder) Scaffold(output string, force bool) error {
	err := s.generateMachineConfig(output, force)
	if err != nil {
		return err
	}

	return s.generateStarterOverlay(output, force)
}

// applyMachineConfigDefaults prepares the machine configuration that lands in
// machine.yaml: default disk layout when none is declared, and the machine
// name wired through as the networking.hostName module.
func (s *Scaffolder) applyMachineConfigDefaults() (*v1alpha1.Machine, error) {
	config := *s.MachineConfig

	if len(config.Spec.Disks) == 0 {
		config.Spec.Disks = []v1alpha1.DiskSpec{v1alpha1.NewDiskSpec("/dev/sda")}
	}

	hostName, err := s.machineHostName()
	if err != nil {
		return nil, err
	}

	if hostName != "" {
		modules := make(map[string]any, len(config.Spec.Modules)+1)
		for key, value := range config.Spec.Modules {
			modules[key] = value
		}

		modules["networking.hostName"] = hostName
		config.Spec.Modules = modules
	}

	return &config, nil
}

// machineHostName sanitizes the machine name down to a DNS label and
// validates the result.
func (s *Scaffolder) machineHostName() (string, error) {
	if s.MachineName == "" {
		return "", nil
	}

	hostName := pkgio.SanitizeToDNSLabel(s.MachineName)

	err := v1alpha1.ValidateMachineName(hostName)
	if err != nil {
		return "", fmt.Errorf("machine name %q: %w", s.MachineName, err)
	}

	return hostName, nil
}

// starterOverlay builds the example overlay layer showing how site-specific
// values stack on machine.yaml.
func (s *Scaffolder) starterOverlay() *layerfile.Overlay {
	return &layerfile.Overlay{
		Name:     "site",
		Priority: "default",
		Values: map[string]any{
			"time.timeZone": "Etc/UTC",
		},
	}
}

// File handling helpers.

// checkFileExistsAndSkip checks if a file exists and should be skipped based
// on the force flag. Returns skip, existed, and the previous mod time.
func (s *Scaffolder) checkFileExistsAndSkip(
	filePath string,
	fileName string,
	force bool,
) (bool, bool, time.Time) {
	info, statErr := os.Stat(filePath)
	if statErr != nil {
		return false, false, time.Time{}
	}

	if !force {
		notify.WriteMessage(notify.Message{
			Type:    notify.WarningType,
			Content: "skipped '%s', file exists use --force to overwrite",
			Args:    []any{fileName},
			Writer:  s.Writer,
		})

		return true, true, info.ModTime()
	}

	return false, true, info.ModTime()
}

// GenerationParams groups parameters for generateWithFileHandling.
type GenerationParams[T any] struct {
	Gen         generator.Generator[T, yamlgenerator.Options]
	Model       T
	Opts        yamlgenerator.Options
	DisplayName string
	Force       bool
	WrapErr     func(error) error
}

// generateWithFileHandling wraps generation with the shared file existence
// checks and notifications.
func generateWithFileHandling[T any](
	scaffolder *Scaffolder,
	params GenerationParams[T],
) error {
	skip, existed, previousModTime := scaffolder.checkFileExistsAndSkip(
		params.Opts.Output,
		params.DisplayName,
		params.Force,
	)

	if skip {
		return nil
	}

	_, err := params.Gen.Generate(params.Model, params.Opts)
	if err != nil {
		if params.WrapErr != nil {
			return params.WrapErr(err)
		}

		return fmt.Errorf("failed to generate %s: %w", params.DisplayName, err)
	}

	if params.Force && existed {
		err := ensureOverwriteModTime(params.Opts.Output, previousModTime)
		if err != nil {
			return fmt.Errorf("failed to update mod time for %s: %w", params.DisplayName, err)
		}
	}

	scaffolder.notifyFileAction(params.DisplayName, existed)

	return nil
}

func ensureOverwriteModTime(path string, previous time.Time) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	current := info.ModTime()
	if previous.IsZero() || current.After(previous) {
		return nil
	}

	// Ensure the new mod time is strictly greater than the previous timestamp.
	newModTime := previous.Add(time.Millisecond)

	now := time.Now()
	if now.After(newModTime) {
		newModTime = now
	}

	err = os.Chtimes(path, newModTime, newModTime)
	if err != nil {
		return fmt.Errorf("failed to update mod time for %s: %w", path, err)
	}

	return nil
}

func (s *Scaffolder) notifyFileAction(displayName string, overwritten bool) {
	action := "created"
	if overwritten {
		action = "overwrote"
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.GenerateType,
		Content: "%s '%s'",
		Args:    []any{action, displayName},
		Writer:  s.Writer,
	})
}

// Configuration file generators.

// generateMachineConfig generates the machine.yaml configuration file.
func (s *Scaffolder) generateMachineConfig(output string, force bool) error {
	config, err := s.applyMachineConfigDefaults()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMachineConfigGeneration, err)
	}

	opts := yamlgenerator.Options{
		Output: filepath.Join(output, MachineConfigFile),
		Force:  force,
	}

	return generateWithFileHandling(
		s,
		GenerationParams[*v1alpha1.Machine]{
			Gen:         s.MachineYAMLGenerator,
			Model:       config,
			Opts:        opts,
			DisplayName: MachineConfigFile,
			Force:       force,
			WrapErr: func(err error) error {
				return fmt.Errorf("%w: %w", ErrMachineConfigGeneration, err)
			},
		},
	)
}

// generateStarterOverlay generates the layers/site.yaml starter overlay.
func (s *Scaffolder) generateStarterOverlay(output string, force bool) error {
	displayName := filepath.Join(OverlayDir, OverlayFile)
	opts := yamlgenerator.Options{
		Output: filepath.Join(output, OverlayDir, OverlayFile),
		Force:  force,
	}

	return generateWithFileHandling(
		s,
		GenerationParams[*layerfile.Overlay]{
			Gen:         s.OverlayGenerator,
			Model:       s.starterOverlay(),
			Opts:        opts,
			DisplayName: displayName,
			Force:       force,
			WrapErr: func(err error) error {
				return fmt.Errorf("%w: %w", ErrOverlayGeneration, err)
			},
		},
	)
}
