// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DuplicateLastWins keeps the last file scanned for a module name.
	DuplicateLastWins DuplicatePolicy = "last-wins"
	// DuplicateError fails the scan on the first name collision.
	DuplicateError DuplicatePolicy = "error"

	// DefaultSuffix is the module file suffix used when none is configured.
	DefaultSuffix = ".js"
)

var (
	// ErrFileNotFound is returned (wrapped) when the source root does not exist
	// or is not a directory.
	ErrFileNotFound = errors.New("source directory not found")
	// ErrDuplicateModule is the sentinel error wrapped by DuplicateModuleError.
	ErrDuplicateModule = errors.New("duplicate module name")
	// ErrInvalidDuplicatePolicy is returned for an unrecognized DuplicatePolicy.
	ErrInvalidDuplicatePolicy = errors.New("invalid duplicate policy")
)

type (
	// DuplicatePolicy selects how name collisions are handled.
	DuplicatePolicy string

	// Module is one indexed source file.
	Module struct {
		// Name is the file name without the suffix.
		Name string
		// Path is the file path (root joined with the relative path).
		Path string
		// Content is the file content, verbatim.
		Content string
	}

	// Collision records a module name found in more than one file.
	Collision struct {
		Name string
		// Kept is the path now held by the index.
		Kept string
		// Dropped is the path that was replaced.
		Dropped string
	}

	// Index maps module names to their source files. It is built once per
	// run and read-only afterwards.
	Index struct {
		// Root is the scanned directory.
		Root string
		// Collisions lists every replacement made under DuplicateLastWins, in
		// scan order.
		Collisions []Collision
		// Scanned counts files that matched the suffix, whether or not they
		// were read.
		Scanned int

		modules map[string]Module
	}

	// DuplicateModuleError is returned under DuplicateError when two files
	// share a module name.
	DuplicateModuleError struct {
		Name   string
		First  string
		Second string
	}
)

// Validate returns an error if the policy is not recognized.
func (p DuplicatePolicy) Validate() error {
	switch p {
	case DuplicateLastWins, DuplicateError:
		return nil
	default:
		return fmt.Errorf("%w %q (want %q or %q)", ErrInvalidDuplicatePolicy, p, DuplicateLastWins, DuplicateError)
	}
}

// String returns the policy name.
func (p DuplicatePolicy) String() string { return string(p) }

// Error implements the error interface.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q is defined by both %s and %s", e.Name, e.First, e.Second)
}

// Unwrap returns ErrDuplicateModule for errors.Is() compatibility.
func (e *DuplicateModuleError) Unwrap() error { return ErrDuplicateModule }

// NewIndex returns an empty index for root.
func NewIndex(root string) *Index {
	return &Index{Root: root, modules: make(map[string]Module)}
}

// Add records m, replacing any module with the same name. The replacement
// is reported in Collisions and returned as ok=false.
func (idx *Index) Add(m Module) (ok bool) {
	if prev, exists := idx.modules[m.Name]; exists {
		idx.Collisions = append(idx.Collisions, Collision{Name: m.Name, Kept: m.Path, Dropped: prev.Path})
		idx.modules[m.Name] = m
		return false
	}
	idx.modules[m.Name] = m
	return true
}

// Lookup returns the module registered under name.
func (idx *Index) Lookup(name string) (Module, bool) {
	m, ok := idx.modules[name]
	return m, ok
}

// Content returns the content of the named module. It lets an Index serve
// as the lookup table for assembly.
func (idx *Index) Content(name string) (string, bool) {
	m, ok := idx.modules[name]
	return m.Content, ok
}

// Len returns the number of distinct module names.
func (idx *Index) Len() int { return len(idx.modules) }

// ModuleName derives the module name of a file name, reporting false when
// the name does not end with suffix or nothing is left after removing it.
func ModuleName(fileName, suffix string) (string, bool) {
	if !strings.HasSuffix(fileName, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(fileName, suffix)
	if name == "" {
		return "", false
	}
	return name, true
}
