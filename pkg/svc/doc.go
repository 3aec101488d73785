// Package svc provides service layer components for metalstrap.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the configuration layer engine.
//
// Subpackages:
//   - sanitizer: blanks machine-specific bindings from captured configurations
//   - layout: turns disk specifications into device-tree and mount-plan layers
//   - pipeline: builds the ordered, fail-fast provisioning sequence
//   - emitter: renders pipelines as install scripts or installer-image inputs
package svc
