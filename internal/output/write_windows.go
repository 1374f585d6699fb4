// SPDX-License-Identifier: MPL-2.0

//go:build windows

package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to a temp file next to path and renames it into
// place. Rename over an existing file is best-effort atomic on Windows.
func WriteFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".nucleopack-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
