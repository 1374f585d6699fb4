// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nucleojs/nucleopack/internal/testutil"
	"github.com/nucleojs/nucleopack/pkg/types"
)

type testApp struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp returns an App rooted at baseDir with an empty user config
// directory and no NO_COLOR in its environment.
func newTestApp(t *testing.T, baseDir string) *testApp {
	t.Helper()
	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &App{
		stdout:    ta.stdout,
		stderr:    ta.stderr,
		getenv:    func(string) string { return "" },
		baseDir:   baseDir,
		configDir: t.TempDir(),
	}
	return ta
}

// run executes the command tree the way Execute does, minus fang and os.Exit.
func (ta *testApp) run(args ...string) error {
	rootCmd := NewRootCommand(ta.app)
	rootCmd.SetArgs(normalizeArgs(rootCmd, args))
	rootCmd.SetOut(ta.stdout)
	rootCmd.SetErr(ta.stderr)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.ExecuteContext(context.Background())
}

// fixture is a small Nucleo.js-style project.
type fixture struct {
	root     string
	licence  string
	source   string
	manifest string
	odir     string
}

func newFixture(t *testing.T, manifest string, files map[string]string) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		root:     root,
		licence:  filepath.Join(root, "build", "licence.txt"),
		source:   filepath.Join(root, "src"),
		manifest: filepath.Join(root, "build", "include.txt"),
		odir:     filepath.Join(root, "dist"),
	}
	testutil.MustWriteFile(t, f.licence, "/* Nucleo.js %s */")
	testutil.MustWriteFile(t, f.manifest, manifest)
	testutil.WriteTree(t, f.source, files)
	return f
}

func (f fixture) args(version string, extra ...string) []string {
	return append([]string{
		"-version", version,
		"-licence", f.licence,
		"-source", f.source,
		"-include", f.manifest,
		"-odir", f.odir,
	}, extra...)
}

func wantExit(t *testing.T, err error, code types.ExitCode) {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError with code %d", err, code)
	}
	if exitErr.Code != code {
		t.Errorf("exit code = %d, want %d (err: %v)", exitErr.Code, code, err)
	}
}
