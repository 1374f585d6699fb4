// SPDX-License-Identifier: MPL-2.0

// Package assemble concatenates module sources into a single library body.
package assemble

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingModule is the sentinel error wrapped by MissingModuleError.
var ErrMissingModule = errors.New("no file associated to module")

type (
	// Lookuper resolves a module name to its source text.
	Lookuper interface {
		Lookup(name string) (string, bool)
	}

	// LookupFunc adapts a plain function to Lookuper.
	LookupFunc func(name string) (string, bool)

	// Library is the assembled output: the licence followed by every module
	// in manifest order.
	Library struct {
		// Data is the complete library text.
		Data []byte
		// Modules lists the module names in the order they were appended.
		Modules []string
	}

	// MissingModuleError reports the first manifest entry with no
	// corresponding source file.
	MissingModuleError struct {
		Name string
	}
)

// Lookup calls f(name).
func (f LookupFunc) Lookup(name string) (string, bool) { return f(name) }

// Error implements the error interface.
func (e *MissingModuleError) Error() string {
	return fmt.Sprintf("there is no file associated to module %q", e.Name)
}

// Unwrap returns ErrMissingModule for errors.Is() compatibility.
func (e *MissingModuleError) Unwrap() error { return ErrMissingModule }

// Assemble builds licence + "\n" + each module verbatim + "\n". Assembly
// stops at the first name idx cannot resolve and no partial data is
// returned.
func Assemble(names []string, idx Lookuper, licence string) (*Library, error) {
	contents := make([]string, len(names))
	size := len(licence) + 2
	for i, name := range names {
		content, ok := idx.Lookup(name)
		if !ok {
			return nil, &MissingModuleError{Name: name}
		}
		contents[i] = content
		size += len(content)
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(licence)
	b.WriteByte('\n')
	for _, content := range contents {
		b.WriteString(content)
	}
	b.WriteByte('\n')

	return &Library{
		Data:    []byte(b.String()),
		Modules: append([]string(nil), names...),
	}, nil
}

// Len returns the size of the library in bytes.
func (l *Library) Len() int { return len(l.Data) }
