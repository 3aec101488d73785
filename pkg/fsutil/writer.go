package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermUserGroupRX = 0o755
	filePermUserRW     = 0o600
	filePermExecutable = 0o755
)

// TryWriteFile writes content to output, creating parent directories as
// needed. An existing file is left untouched unless force is set. The written
// content is returned for chaining.
func TryWriteFile(content string, output string, force bool) (string, error) {
	return tryWrite(content, output, force, filePermUserRW)
}

// TryWriteExecutable behaves like [TryWriteFile] but marks the file
// executable, for emitted install scripts.
func TryWriteExecutable(content string, output string, force bool) (string, error) {
	return tryWrite(content, output, force, filePermExecutable)
}

func tryWrite(content string, output string, force bool, perm os.FileMode) (string, error) {
	if output == "" {
		return "", ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	if !force {
		_, err := os.Stat(output)
		if err == nil {
			// File exists and force is false, keep it.
			return content, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to check file %s: %w", output, err)
		}
	}

	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	err = os.WriteFile(output, []byte(content), perm)
	if err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return content, nil
}
