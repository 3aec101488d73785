// Package emitter renders provisioning pipelines into artifacts: a
// standalone fail-fast install script, or the inputs for a bootable installer
// image that runs the same script on its first console login.
package emitter

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
	"mvdan.cc/sh/v3/syntax"
)

// scriptPreamble makes the shell's error handling explicit: any unhandled
// non-zero exit, unset variable or failed pipe element halts the run.
const scriptPreamble = "set -euo pipefail"

// ScriptArtifact is a standalone executable install script.
type ScriptArtifact struct {
	Body string
}

// ScriptEmitter renders pipelines as bash scripts.
type ScriptEmitter struct{}

// NewScriptEmitter creates a new ScriptEmitter.
func NewScriptEmitter() *ScriptEmitter {
	return &ScriptEmitter{}
}

// Emit renders the pipeline as a bash script, one command per step in
// pipeline order, and parses the result before returning it. A script that
// does not parse is an emission error, never an artifact.
func (e *ScriptEmitter) Emit(pipe *pipeline.Pipeline) (*ScriptArtifact, error) {
	if pipe == nil || len(pipe.Steps) == 0 {
		return nil, ErrNoPipeline
	}

	var body strings.Builder

	body.WriteString("#!/usr/bin/env bash\n")
	fmt.Fprintf(&body, "# Provisioning run for %s. Generated by metalstrap.\n", pipe.Device)
	body.WriteString("# Steps abort the run on failure unless marked best-effort.\n")
	body.WriteString(scriptPreamble + "\n")

	for _, step := range pipe.Steps {
		body.WriteString("\n# " + step.Description + "\n")
		body.WriteString(renderCommand(step) + "\n")
	}

	artifact := &ScriptArtifact{Body: body.String()}

	if err := validateScript(artifact.Body); err != nil {
		return nil, err
	}

	return artifact, nil
}

// renderCommand renders one step as a shell command line. Steps that must
// not abort the run carry an explicit `|| true` suffix; fail-fast is opt-out
// per step, never implied by the runtime.
func renderCommand(step pipeline.Step) string {
	parts := make([]string, 0, len(step.Command))
	for _, arg := range step.Command {
		parts = append(parts, renderArg(arg))
	}

	line := strings.Join(parts, " ")

	if !step.AbortOnFailure {
		line += " || true"
	}

	return line
}

func renderArg(arg pipeline.Arg) string {
	if arg.Value == "" {
		return `""`
	}

	if arg.Quote {
		return "'" + strings.ReplaceAll(arg.Value, "'", `'\''`) + "'"
	}

	return shellescape.Quote(arg.Value)
}

// validateScript parses the rendered script so a configuration value that
// smuggles in shell syntax surfaces here instead of at execution time.
func validateScript(body string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(body), "install.sh")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}

	return nil
}
