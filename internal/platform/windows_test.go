// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"con", true},
		{"NUL", true},
		{"nul.js", true},
		{"aux.min.js", true},
		{"Com7", true},
		{"lpt1 ", true},
		{"nucleo", false},
		{"console", false},
		{"com10", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWindowsReservedName(tt.name); got != tt.want {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
