// SPDX-License-Identifier: MPL-2.0

// Package output places build artifacts in the output directory.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrOutputDirNotFound is returned when the output directory is missing and
// may not be created.
var ErrOutputDirNotFound = errors.New("output directory not found")

const dirPerm = 0o755

// Paths returns the library path <odir>/<libname>.<ext> and the minified
// path <odir>/<libname>.min.<ext>.
func Paths(odir, libname, ext string) (library, minified string) {
	library = filepath.Join(odir, libname+"."+ext)
	minified = filepath.Join(odir, libname+".min."+ext)
	return library, minified
}

// EnsureDir checks that dir exists, creating it (and its parents) when
// create is true.
func EnsureDir(dir string, create bool) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDirNotFound, dir)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat output directory: %w", err)
	case !create:
		return fmt.Errorf("%w: %s", ErrOutputDirNotFound, dir)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// Prepend rewrites path with prefix followed by its current content.
func Prepend(path string, prefix []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	buf := make([]byte, 0, len(prefix)+len(data))
	buf = append(buf, prefix...)
	buf = append(buf, data...)
	return WriteFile(path, buf)
}

// RemoveStale deletes an artifact left by an earlier build. A missing file
// is not an error.
func RemoveStale(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
