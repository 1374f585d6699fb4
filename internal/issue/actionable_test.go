// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "assemble library"},
			expected: "failed to assemble library",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "read manifest",
				Resource:  "build/include.txt",
			},
			expected: "failed to read manifest: build/include.txt",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "render licence",
				Cause:     errors.New("template has 2 version slots, want 1"),
			},
			expected: "failed to render licence: template has 2 version slots, want 1",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read manifest",
				Resource:  "build/include.txt",
				Cause:     fs.ErrNotExist,
			},
			expected: "failed to read manifest: build/include.txt: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	err := NewErrorContext().
		WithOperation("read licence").
		Wrap(fs.ErrNotExist).
		BuildError()

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(%v, fs.ErrNotExist) = false, want true", err)
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As should find *ActionableError")
	}
	if ae.Unwrap() != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v, want fs.ErrNotExist", ae.Unwrap())
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("exit status 3")
	err := &ActionableError{
		Operation:   "run minifier",
		Resource:    "dist/nucleo.js",
		Suggestions: []string{"Install java", "Check yui.jar is present"},
		Cause:       inner,
	}

	plain := err.Format(false)
	if !strings.HasPrefix(plain, "failed to run minifier: dist/nucleo.js: exit status 3") {
		t.Errorf("Format(false) = %q, missing main message", plain)
	}
	if !strings.Contains(plain, "\n  • Install java") || !strings.Contains(plain, "\n  • Check yui.jar is present") {
		t.Errorf("Format(false) = %q, missing suggestions", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. exit status 3") {
		t.Errorf("Format(true) = %q, missing error chain", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Run("missing operation returns nil", func(t *testing.T) {
		if got := NewErrorContext().WithResource("x").Build(); got != nil {
			t.Errorf("Build() = %v, want nil", got)
		}
		if got := NewErrorContext().BuildError(); got != nil {
			t.Errorf("BuildError() = %v, want nil", got)
		}
	})

	t.Run("all fields", func(t *testing.T) {
		cause := errors.New("boom")
		ae := NewErrorContext().
			WithOperation("assemble library").
			WithResource("missing").
			WithSuggestion("first").
			WithSuggestionf("check %s", "spelling").
			WithIssue(ModuleNotFoundId).
			Wrap(cause).
			Build()

		if ae.Operation != "assemble library" || ae.Resource != "missing" {
			t.Errorf("unexpected operation/resource: %+v", ae)
		}
		if len(ae.Suggestions) != 2 || ae.Suggestions[1] != "check spelling" {
			t.Errorf("Suggestions = %v", ae.Suggestions)
		}
		if ae.Id != ModuleNotFoundId {
			t.Errorf("Id = %d, want %d", ae.Id, ModuleNotFoundId)
		}
		if ae.Cause != cause {
			t.Errorf("Cause = %v, want %v", ae.Cause, cause)
		}
	})
}

func TestWrapWithContext(t *testing.T) {
	if got := WrapWithContext(nil, "op", "res"); got != nil {
		t.Errorf("WrapWithContext(nil) = %v, want nil", got)
	}

	cause := errors.New("denied")
	got := WrapWithContext(cause, "write library", "dist/nucleo.js")
	if got.Error() != "failed to write library: dist/nucleo.js: denied" {
		t.Errorf("Error() = %q", got.Error())
	}
}
