// SPDX-License-Identifier: MPL-2.0

// Package licence renders the versioned licence header that opens every
// packaged library.
//
// A licence template is plain text with exactly one "%s" slot for the
// version. "%%" stands for a literal percent sign; any other "%" sequence is
// rejected so that a typo never reaches a published artifact.
package licence

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Slot is the version placeholder in a licence template.
const Slot = "%s"

var (
	// ErrFileNotFound is returned (wrapped) when the template file does not exist.
	ErrFileNotFound = errors.New("licence template not found")
	// ErrFormatMismatch is the sentinel error wrapped by FormatError.
	ErrFormatMismatch = errors.New("licence template format mismatch")
)

type (
	// Licence is a rendered licence header.
	Licence struct {
		// Text is the template with the version substituted.
		Text string
		// Version is the version string that was substituted.
		Version string
		// Path is the template file, empty when rendered from a string.
		Path string
	}

	// FormatError is returned when a template does not have exactly one
	// version slot, or contains an unsupported "%" sequence.
	FormatError struct {
		// Slots is the number of "%s" slots found.
		Slots int
		// Verb is the offending sequence (e.g. "%d"), empty for slot-count errors.
		Verb string
		// Offset is the byte offset of Verb in the template.
		Offset int
	}
)

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Verb != "" {
		return fmt.Sprintf("unsupported sequence %q at byte %d (only %%s and %%%% are allowed)", e.Verb, e.Offset)
	}
	return fmt.Sprintf("template has %d version slots, want 1", e.Slots)
}

// Unwrap returns ErrFormatMismatch for errors.Is() compatibility.
func (e *FormatError) Unwrap() error { return ErrFormatMismatch }

// Load reads the template at path and renders it with version.
func Load(path, version string) (*Licence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("read licence template: %w", err)
	}

	text, err := Render(string(data), version)
	if err != nil {
		return nil, err
	}
	return &Licence{Text: text, Version: version, Path: path}, nil
}

// Render substitutes version into the single "%s" slot of tmpl. The version
// is inserted verbatim, so "%", "\" and "$" in it survive unchanged.
func Render(tmpl, version string) (string, error) {
	var out strings.Builder
	out.Grow(len(tmpl) + len(version))

	slots := 0
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(tmpl) {
			return "", &FormatError{Slots: slots, Verb: "%", Offset: i}
		}
		switch next := tmpl[i+1]; next {
		case 's':
			slots++
			out.WriteString(version)
		case '%':
			out.WriteByte('%')
		default:
			return "", &FormatError{Slots: slots, Verb: tmpl[i : i+2], Offset: i}
		}
		i++
	}

	if slots != 1 {
		return "", &FormatError{Slots: slots}
	}
	return out.String(), nil
}
