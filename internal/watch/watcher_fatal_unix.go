// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports errors after which no further events will
// arrive. ENOSPC means fs.inotify.max_user_watches is exhausted; a large
// source tree with many subdirectories hits it first. EMFILE and ENFILE are
// descriptor limits.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
