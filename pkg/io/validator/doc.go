// Package validator provides interfaces for configuration file validation.
//
// This package defines the Validator interface and common validation types
// used when loading machine configurations, ensuring correctness before any
// provisioning artifact is generated.
//
// Key functionality:
//   - Validator[T]: Generic interface for configuration validation
//   - ValidationResult: Structured validation results with errors and warnings
//   - ValidationError: Detailed error with field, message, and fix suggestions
//   - ValidateMetadata: Common metadata validation for Kind/APIVersion fields
//
// Subpackages:
//   - machine: Machine configuration validator
package validator
