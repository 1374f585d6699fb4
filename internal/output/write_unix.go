// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package output

import (
	"fmt"

	"github.com/google/renameio/v2"
)

const filePerm = 0o644

// WriteFile replaces path with data atomically: the bytes go to a pending
// file in the same directory which is fsynced and then renamed over path.
// A failed write leaves any previous file untouched.
func WriteFile(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(filePerm))
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		// no-op once committed
		_ = pendingFile.Cleanup()
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
