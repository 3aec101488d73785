// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: The metalstrap command tree (init, script, image)
//   - cli/helpers: Flag handling utilities including timing detection
//   - cli/lifecycle: Shared command lifecycle wiring (config load, stages)
//   - cli/ui: User interface components (errorhandler)
//
// The utilities in this package follow dependency injection patterns and
// integrate with the metalstrap runtime container for testability.
package cli
