// Package configmanager provides configuration management for Machine configurations.
//
// This package contains the Manager implementation for loading machine.yaml,
// field selector binding functionality for automatic CLI flag creation, and
// the validation reporting shared by provisioning commands.
//
// Configuration priority follows the usual ladder:
// defaults < config file < environment variables < flags.
package configmanager
