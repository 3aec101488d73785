// Package helpers provides common CLI utilities for command handling.
//
// Key functionality:
//   - Flag handling utilities including timing detection
//   - Config file flag resolution shared by all build commands
package helpers
