// Package errorhandler runs cobra commands while capturing their error
// stream, so failures surface as a single normalized error instead of raw
// stderr output plus an exit code.
package errorhandler

import (
	"bytes"

	"github.com/spf13/cobra"
)

// Executor coordinates cobra execution, capturing stderr output and surfacing aggregated errors.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs the provided command while intercepting cobra's error stream.
// It returns nil on success, or a *CommandError carrying both the normalized
// stderr text and the original error so error-chain semantics survive.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}
