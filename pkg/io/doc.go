// Package io provides utilities for input and output operations related to configuration management.
//
// This package contains domain-specific I/O utilities focused on loading,
// validating, generating, and scaffolding machine configurations.
//
// Subpackages:
//   - configmanager: Machine configuration loading and management
//   - generator: Configuration file generation
//   - layerfile: Overlay layer file loading
//   - marshaller: Serialization and deserialization
//   - scaffolder: Project scaffolding and file generation
//   - validator: Configuration validation
//
// For low-level file I/O operations (reading, writing, path manipulation),
// see the fsutil package.
package io
