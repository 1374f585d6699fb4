// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nucleojs/nucleopack/internal/testutil"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      []string
		wantBlank int
	}{
		{name: "simple", input: "a\nb\nc\n", want: []string{"a", "b", "c"}},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "trims whitespace", input: "  Camera \n\tScene\t\n", want: []string{"Camera", "Scene"}},
		{name: "crlf line endings", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines skipped", input: "a\n\n   \nb\n", want: []string{"a", "b"}, wantBlank: 2},
		{name: "order preserved", input: "z\na\nm\n", want: []string{"z", "a", "m"}},
		{name: "duplicates kept", input: "a\nb\na\n", want: []string{"a", "b", "a"}},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Parse(strings.NewReader(tt.input), "include.txt")
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, m.Names()); diff != "" {
				t.Errorf("Names() mismatch (-want +got):\n%s", diff)
			}
			if m.SkippedBlank != tt.wantBlank {
				t.Errorf("SkippedBlank = %d, want %d", m.SkippedBlank, tt.wantBlank)
			}
			if m.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", m.Len(), len(tt.want))
			}
		})
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "include.txt")
	testutil.MustWriteFile(t, path, "Utils\nCamera\nScene\n")

	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if m.Path != path {
		t.Errorf("Path = %q, want %q", m.Path, path)
	}
	if diff := cmp.Diff([]string{"Utils", "Camera", "Scene"}, m.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("Read() expected error for missing file")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error should wrap ErrFileNotFound, got: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got: %v", err)
	}
}

func TestManifest_NamesIsCopy(t *testing.T) {
	t.Parallel()

	m := fromNames("a", "b")
	names := m.Names()
	names[0] = "mutated"
	if m.Names()[0] != "a" {
		t.Error("Names() must return a copy")
	}
}

func TestManifest_Set(t *testing.T) {
	t.Parallel()

	set := fromNames("a", "b", "a").Set()
	if len(set) != 2 {
		t.Fatalf("Set() has %d entries, want 2", len(set))
	}
	for _, n := range []string{"a", "b"} {
		if _, ok := set[n]; !ok {
			t.Errorf("Set() missing %q", n)
		}
	}
}

func TestManifest_Duplicates(t *testing.T) {
	t.Parallel()

	m, err := Parse(strings.NewReader("a\n\nb\na\nc\nb\na\n"), "")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []Duplicate{
		{Name: "a", Lines: []int{1, 4, 7}},
		{Name: "b", Lines: []int{3, 6}},
	}
	if diff := cmp.Diff(want, m.Duplicates()); diff != "" {
		t.Errorf("Duplicates() mismatch (-want +got):\n%s", diff)
	}
	if m.Path != "<input>" {
		t.Errorf("Path = %q, want <input>", m.Path)
	}
}

func TestManifest_NoDuplicates(t *testing.T) {
	t.Parallel()

	if dups := fromNames("a", "b").Duplicates(); len(dups) != 0 {
		t.Errorf("Duplicates() = %v, want none", dups)
	}
}

// fromNames builds a manifest from names, in order, numbering them as
// consecutive lines.
func fromNames(names ...string) *Manifest {
	m := &Manifest{Path: "<input>", names: append([]string(nil), names...)}
	for i := range names {
		m.lines = append(m.lines, i+1)
	}
	return m
}
