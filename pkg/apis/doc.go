// Package apis provides API type definitions for metalstrap resources.
//
// This package contains versioned API types following Kubernetes API conventions:
//
//   - machine: Machine configuration types for metalstrap declarative configuration
//
// The API types are designed to be serializable to YAML and support
// declarative configuration workflows.
package apis
