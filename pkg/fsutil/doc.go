// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File writing: TryWriteFile, TryWriteExecutable
//   - Path operations: ExpandHomePath
package fsutil
