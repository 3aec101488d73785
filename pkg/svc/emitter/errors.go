package emitter

import "errors"

var (
	// ErrNoPipeline indicates an emitter was handed a nil or empty pipeline.
	ErrNoPipeline = errors.New("no pipeline to emit")

	// ErrMalformedScript indicates the rendered script does not parse as
	// shell, typically because a configuration value smuggled in shell
	// syntax.
	ErrMalformedScript = errors.New("emitted script does not parse")
)
