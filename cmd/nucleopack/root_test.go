// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nucleojs/nucleopack/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got, want := getVersionString(), "dev (built from source)"; got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestNormalizeArgs(t *testing.T) {
	t.Parallel()

	rootCmd := NewRootCommand(newTestApp(t, t.TempDir()).app)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "single dash long flags",
			args: []string{"-version", "0.1.2", "-licence", "build/licence.txt", "-minify"},
			want: []string{"--version", "0.1.2", "--licence", "build/licence.txt", "--minify"},
		},
		{
			name: "double dash untouched",
			args: []string{"--odir", "dist", "--dry-run"},
			want: []string{"--odir", "dist", "--dry-run"},
		},
		{
			name: "inline value",
			args: []string{"-include=build/include.txt"},
			want: []string{"--include=build/include.txt"},
		},
		{
			name: "shorthand untouched",
			args: []string{"-v", "-source", "src"},
			want: []string{"-v", "--source", "src"},
		},
		{
			name: "value starting with a dash kept",
			args: []string{"-version", "-rc1", "-odir", "out"},
			want: []string{"--version", "-rc1", "--odir", "out"},
		},
		{
			name: "persistent flag",
			args: []string{"-config", "ci.cue", "-no-color"},
			want: []string{"--config", "ci.cue", "--no-color"},
		},
		{
			name: "unknown flag left for cobra",
			args: []string{"-bogus"},
			want: []string{"-bogus"},
		},
		{
			name: "subcommand",
			args: []string{"config", "show", "-config", "x.cue"},
			want: []string{"config", "show", "--config", "x.cue"},
		},
		{
			name: "after terminator",
			args: []string{"-minify", "--", "-odir"},
			want: []string{"--minify", "--", "-odir"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, normalizeArgs(rootCmd, tt.args)); diff != "" {
				t.Errorf("normalizeArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"success", nil, types.ExitSuccess},
		{"pipeline failure", &ExitError{Code: types.ExitFailure}, types.ExitFailure},
		{"wrapped usage", fmt.Errorf("run: %w", &ExitError{Code: types.ExitUsage}), types.ExitUsage},
		{"cobra parse error", errors.New("unknown flag: --bogus"), types.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 2}).Error(); got != "exit status 2" {
		t.Errorf("Error() = %q", got)
	}
	inner := errors.New("boom")
	e := &ExitError{Code: 1, Err: inner}
	if e.Error() != "boom" || !errors.Is(e, inner) {
		t.Errorf("ExitError does not expose its cause: %v", e)
	}
}
