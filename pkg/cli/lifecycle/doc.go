// Package lifecycle provides build command helpers.
//
// This package contains utilities for wiring build commands (script, image,
// init) with consistent configuration loading, dependency resolution,
// messaging, and timing patterns.
package lifecycle
