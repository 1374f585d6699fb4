// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the ordered list of modules that make up a library.
//
// A manifest is a plain text file with one module name per line. The line
// order is the concatenation order of the packaged library.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrFileNotFound is returned (wrapped) when the manifest file does not exist.
var ErrFileNotFound = errors.New("manifest file not found")

type (
	// Manifest is the ordered sequence of module names read from a manifest file.
	Manifest struct {
		// Path is the file the manifest was read from ("<input>" for readers).
		Path string
		// SkippedBlank counts lines that were empty after trimming.
		SkippedBlank int

		names []string
		lines []int
	}

	// Duplicate describes a module name listed more than once.
	Duplicate struct {
		Name string
		// Lines are the 1-based manifest line numbers that list Name.
		Lines []int
	}
)

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads one module name per line from r, trimming surrounding
// whitespace. Lines that are empty after trimming are skipped: an empty name
// can never resolve to a module file.
func Parse(r io.Reader, name string) (*Manifest, error) {
	if name == "" {
		name = "<input>"
	}

	m := &Manifest{Path: name}
	lineNo := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		entry := strings.TrimSpace(sc.Text())
		if entry == "" {
			m.SkippedBlank++
			continue
		}
		m.names = append(m.names, entry)
		m.lines = append(m.lines, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", name, err)
	}

	return m, nil
}

// Names returns a copy of the module names in manifest order.
func (m *Manifest) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of entries, duplicates included.
func (m *Manifest) Len() int { return len(m.names) }

// Set returns the distinct module names.
func (m *Manifest) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(m.names))
	for _, n := range m.names {
		set[n] = struct{}{}
	}
	return set
}

// Duplicates reports names listed more than once, in order of first
// appearance. Duplicated modules are still concatenated once per listing.
func (m *Manifest) Duplicates() []Duplicate {
	positions := make(map[string][]int, len(m.names))
	var order []string
	for i, n := range m.names {
		if _, seen := positions[n]; !seen {
			order = append(order, n)
		}
		positions[n] = append(positions[n], m.lines[i])
	}

	var dups []Duplicate
	for _, n := range order {
		if len(positions[n]) > 1 {
			dups = append(dups, Duplicate{Name: n, Lines: positions[n]})
		}
	}
	return dups
}
