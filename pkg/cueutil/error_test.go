// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "test.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("some error")
		err := FormatError(originalErr, "test.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, originalErr) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
		if !strings.Contains(err.Error(), "test.cue") {
			t.Errorf("error should contain filepath, got: %v", err)
		}
	})

	t.Run("CUE error becomes a ValidationError", func(t *testing.T) {
		t.Parallel()

		cueErr := cueerrors.Newf(token.NoPos, "conflicting values")
		err := FormatError(cueErr, "test.cue")

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("error should wrap ErrInvalidDocument, got: %v", err)
		}
		if len(verr.Fields) != 1 || !strings.Contains(verr.Fields[0].Message, "conflicting values") {
			t.Errorf("Fields = %+v", verr.Fields)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{"empty path", []string{}, ""},
		{"single element", []string{"name"}, "name"},
		{"nested path", []string{"ui", "color"}, "ui.color"},
		{"array index", []string{"exclude", "1"}, "exclude[1]"},
		{"nested arrays", []string{"items", "0", "values", "1"}, "items[0].values[1]"},
		{"leading digits are a field", []string{"0", "name"}, "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"within limit", 11, false},
		{"at exact limit", 100, false},
		{"exceeding limit", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFileSize(make([]byte, tt.size), 100, "test.cue")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFileSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("error should wrap ErrFileTooLarge, got: %v", err)
			}
			for _, want := range []string{"test.cue", "101", "100"} {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q should contain %q", err.Error(), want)
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "single field",
			err:  &ValidationError{FilePath: "nucleopack.cue", Fields: []FieldError{{Path: "ui.verbose", Message: "conflicting values"}}},
			want: "nucleopack.cue: ui.verbose: conflicting values",
		},
		{
			name: "no path",
			err:  &ValidationError{FilePath: "nucleopack.cue", Fields: []FieldError{{Message: "syntax error"}}},
			want: "nucleopack.cue: syntax error",
		},
		{
			name: "multiple fields",
			err: &ValidationError{FilePath: "nucleopack.cue", Fields: []FieldError{
				{Path: "name", Message: "a"},
				{Path: "ext", Message: "b"},
			}},
			want: "nucleopack.cue: validation failed:\n  name: a\n  ext: b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrInvalidDocument) {
				t.Error("ValidationError should wrap ErrInvalidDocument")
			}
		})
	}
}
