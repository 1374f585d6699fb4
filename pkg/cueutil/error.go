// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrInvalidDocument is the sentinel error wrapped by ValidationError.
	ErrInvalidDocument = errors.New("invalid CUE document")
	// ErrFileTooLarge is returned when a document exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// FieldError is one validation failure at a CUE path.
	FieldError struct {
		// Path is the JSON-style path to the value (e.g. "exclude[1]").
		Path string
		// Message is the CUE error message with the path prefix removed.
		Message string
	}

	// ValidationError collects the CUE errors of one document.
	ValidationError struct {
		// FilePath is the document being validated.
		FilePath string
		// Fields holds one entry per CUE error, in CUE order.
		Fields []FieldError
	}
)

// Error implements the error interface.
func (f FieldError) Error() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return e.FilePath + ": " + ErrInvalidDocument.Error()
	case 1:
		return e.FilePath + ": " + e.Fields[0].Error()
	}
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.Error()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrInvalidDocument for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

// FormatError converts a CUE error into a *ValidationError whose fields are
// prefixed with JSON-style paths. Non-CUE errors are wrapped with filePath.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	// cueerrors.Errors promotes any error to a CUE error, which would
	// hide the original from errors.Is.
	var ce cueerrors.Error
	if !errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	cueErrs := cueerrors.Errors(err)

	verr := &ValidationError{FilePath: filePath}
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}
		verr.Fields = append(verr.Fields, FieldError{Path: pathStr, Message: msg})
	}
	return verr
}

// formatPath converts a CUE path (["exclude", "1"]) to JSON-path notation
// ("exclude[1]").
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns an error wrapping ErrFileTooLarge when data is
// larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds maximum %d bytes",
			filename, ErrFileTooLarge, len(data), maxSize)
	}
	return nil
}
