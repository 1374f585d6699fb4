// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModuleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		suffix string
		want   string
		wantOK bool
	}{
		{"Camera.js", ".js", "Camera", true},
		{"jquery.min.js", ".js", "jquery.min", true},
		{"a.js.js", ".js", "a.js", true},
		{"Camera.ts", ".js", "", false},
		{"Camera.jsx", ".js", "", false},
		{".js", ".js", "", false},
		{"style.css", ".css", "style", true},
	}

	for _, tt := range tests {
		got, ok := ModuleName(tt.file, tt.suffix)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ModuleName(%q, %q) = (%q, %v), want (%q, %v)", tt.file, tt.suffix, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIndex_AddAndLookup(t *testing.T) {
	t.Parallel()

	idx := NewIndex("src")
	if !idx.Add(Module{Name: "a", Path: "src/x/a.js", Content: "first"}) {
		t.Fatal("first Add() reported a collision")
	}
	if idx.Add(Module{Name: "a", Path: "src/y/a.js", Content: "second"}) {
		t.Fatal("second Add() should report a collision")
	}
	idx.Add(Module{Name: "b", Path: "src/b.js", Content: "B"})

	m, ok := idx.Lookup("a")
	if !ok || m.Content != "second" || m.Path != "src/y/a.js" {
		t.Errorf("Lookup(a) = %+v, %v; want last added", m, ok)
	}
	if content, ok := idx.Content("b"); !ok || content != "B" {
		t.Errorf("Content(b) = %q, %v", content, ok)
	}
	if _, ok := idx.Lookup("missing"); ok {
		t.Error("Lookup(missing) should report false")
	}

	want := []Collision{{Name: "a", Kept: "src/y/a.js", Dropped: "src/x/a.js"}}
	if diff := cmp.Diff(want, idx.Collisions); diff != "" {
		t.Errorf("Collisions mismatch (-want +got):\n%s", diff)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if diff := cmp.Diff([]string{"a", "b"}, indexNames(idx)); diff != "" {
		t.Errorf("indexed names mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicatePolicy_Validate(t *testing.T) {
	t.Parallel()

	for _, p := range []DuplicatePolicy{DuplicateLastWins, DuplicateError} {
		if err := p.Validate(); err != nil {
			t.Errorf("%q.Validate() error: %v", p, err)
		}
	}
	if err := DuplicatePolicy("first-wins").Validate(); !errors.Is(err, ErrInvalidDuplicatePolicy) {
		t.Errorf("first-wins: error = %v, want ErrInvalidDuplicatePolicy", err)
	}
}

// indexNames returns the indexed module names in sorted order.
func indexNames(idx *Index) []string {
	return slices.Sorted(maps.Keys(idx.modules))
}
