package emitter

import (
	"fmt"
	"strings"

	"github.com/metalstrap/metalstrap/pkg/layer"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
)

// InstallCommandName is the name under which the pipeline is embedded into
// the installer image.
const InstallCommandName = "metalstrap-install"

// Default boot trigger: autologin as root on the primary virtual console.
const (
	DefaultConsole       = "tty1"
	DefaultAutologinUser = "root"
)

// markerFile guards the autorun so the pipeline starts exactly once per
// boot, not on every login shell the trigger console opens.
const markerFile = "/run/metalstrap-started"

// BootTrigger describes the console session that starts the embedded
// pipeline.
type BootTrigger struct {
	// Console is the virtual console whose first session triggers the run.
	Console string

	// User is the account the console logs in automatically.
	User string
}

// ImageArtifact holds the inputs the external image builder needs: the
// pipeline rendered as a named command, and the resolved configuration tree
// of the installer environment that autoruns it.
type ImageArtifact struct {
	InstallCommand string

	// Pipeline is the embedded provisioning sequence; Script is its shell
	// rendering, installed as InstallCommand.
	Pipeline *pipeline.Pipeline
	Script   *ScriptArtifact

	Profile map[string]any
	Trigger BootTrigger
}

// ImageEmitter renders pipelines as bootable-installer-image inputs.
type ImageEmitter struct {
	scripts *ScriptEmitter
}

// NewImageEmitter creates a new ImageEmitter.
func NewImageEmitter() *ImageEmitter {
	return &ImageEmitter{scripts: NewScriptEmitter()}
}

// Emit renders the pipeline as the embedded install command plus the
// installer environment profile: text-only, substituter-free, autologin on
// the trigger console, and a one-shot autorun of the command the first time
// that console's session starts. No other session ever triggers the run.
func (e *ImageEmitter) Emit(pipe *pipeline.Pipeline, trigger BootTrigger) (*ImageArtifact, error) {
	script, err := e.scripts.Emit(pipe)
	if err != nil {
		return nil, err
	}

	if trigger.Console == "" {
		trigger.Console = DefaultConsole
	}

	if trigger.User == "" {
		trigger.User = DefaultAutologinUser
	}

	autorun := autorunSnippet(trigger.Console)
	if err := validateScript(autorun); err != nil {
		return nil, err
	}

	base := layer.New("installer-base", map[string]any{
		"services.xserver.enable":   false,
		"nix.settings.substituters": []any{},
	})

	overlay := layer.NewWithPriority("installer-autorun", layer.PriorityForce, map[string]any{
		"services.getty.autologinUser": trigger.User,
		"programs.bash.loginShellInit": autorun,
	})

	return &ImageArtifact{
		InstallCommand: InstallCommandName,
		Pipeline:       pipe,
		Script:         script,
		Profile:        layer.Resolve(base).Extend(overlay).Map(),
		Trigger:        trigger,
	}, nil
}

// autorunSnippet runs the install command the first time a login shell opens
// on the trigger console, and never on any other session.
func autorunSnippet(console string) string {
	var snippet strings.Builder

	fmt.Fprintf(&snippet, "if [ \"$(tty)\" = \"/dev/%s\" ] && [ ! -e %s ]; then\n", console, markerFile)
	fmt.Fprintf(&snippet, "  touch %s\n", markerFile)
	fmt.Fprintf(&snippet, "  %s\n", InstallCommandName)
	snippet.WriteString("fi\n")

	return snippet.String()
}
