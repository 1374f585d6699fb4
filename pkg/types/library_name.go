// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nucleojs/nucleopack/internal/platform"
)

// ErrInvalidLibraryName is the sentinel error wrapped by InvalidLibraryNameError.
var ErrInvalidLibraryName = errors.New("invalid library name")

type (
	// LibraryName is the base name of the packaged artifact, without extension
	// (e.g., "nucleo" for nucleo.js and nucleo.min.js). It must be non-empty
	// and must not contain path separators, so the artifact always lands
	// directly inside the output directory.
	LibraryName string

	// InvalidLibraryNameError is returned when a LibraryName is empty,
	// contains a path separator or names a Windows device.
	InvalidLibraryNameError struct {
		Value  LibraryName
		Reason string
	}
)

// String returns the string representation of the LibraryName.
func (n LibraryName) String() string { return string(n) }

// Validate returns an error if the name cannot be used as an artifact base name.
func (n LibraryName) Validate() error {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidLibraryNameError{Value: n, Reason: "must be non-empty"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidLibraryNameError{Value: n, Reason: "must not contain path separators"}
	case s == "." || s == "..":
		return &InvalidLibraryNameError{Value: n, Reason: "must not be a relative directory reference"}
	case platform.IsWindowsReservedName(s):
		return &InvalidLibraryNameError{Value: n, Reason: "is a reserved device name on Windows"}
	}
	return nil
}

// Error implements the error interface for InvalidLibraryNameError.
func (e *InvalidLibraryNameError) Error() string {
	return fmt.Sprintf("invalid library name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidLibraryName for errors.Is() compatibility.
func (e *InvalidLibraryNameError) Unwrap() error { return ErrInvalidLibraryName }
