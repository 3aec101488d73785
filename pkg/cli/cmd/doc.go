// Package cmd provides the command-line interface for metalstrap.
//
// This package contains the root command and the build subcommands:
//   - init: Scaffold a machine configuration and starter overlay
//   - script: Build an install script from the resolved configuration
//   - image: Build bootable-installer-image inputs from the resolved configuration
package cmd
