// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nucleojs/nucleopack/internal/config"
	"github.com/nucleojs/nucleopack/pkg/types"
)

var (
	// Version is the semantic version of the tool (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App wires the CLI to its output streams and environment. Tests build
	// one per case so nothing is shared between commands.
	App struct {
		stdout io.Writer
		stderr io.Writer
		getenv func(string) string
		// baseDir is where the project config is looked up ("" = working directory).
		baseDir string
		// configDir overrides the user config directory ("" = platform default).
		configDir string
	}

	// rootFlags holds the flags that are not configuration keys.
	rootFlags struct {
		configPath string
		noColor    bool
		dryRun     bool
		watch      bool
	}
)

// NewApp returns an App writing to stdout and stderr and reading the process
// environment.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{stdout: stdout, stderr: stderr, getenv: os.Getenv}
}

// NewRootCommand builds the nucleopack command tree.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "nucleopack",
		Short: "Package Nucleo.js modules into a single library file",
		Long: `nucleopack concatenates the modules listed in a manifest, in manifest order,
under a licence header carrying the library version, and writes the result
to <odir>/<name>.<ext>. With -minify the library is also passed through an
external minifier and written to <odir>/<name>.min.<ext>.

Every setting can come from a flag, from nucleopack.cue, or from a
NUCLEOPACK_* environment variable. Flags may be spelled with one or two
dashes.`,
		Example: `  nucleopack -version 1.2.0 -licence build/licence.txt -source src -include build/include.txt -odir dist
  nucleopack -version 1.2.0 -minify
  nucleopack --watch
  nucleopack config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, app, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is ./"+config.ProjectFileName+")")
	pf.BoolP("verbose", "v", false, "enable debug logging and full error chains")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable coloured output")

	f := rootCmd.Flags()
	f.String("version", "", "library version written into the licence header")
	f.String("licence", "", "licence template with one %s slot for the version")
	f.String("source", "", "directory searched recursively for module files")
	f.String("include", "", "manifest listing one module name per line")
	f.String("odir", "", "output directory")
	f.Bool("minify", false, "also write a minified copy")
	f.String("name", "", "library base name (default \"nucleo\")")
	f.String("ext", "", "module and library extension (default \"js\")")
	f.String("minifier", "", "minifier command line with {in}, {out} and {ext} placeholders")
	f.StringSlice("exclude", nil, "glob of source paths to skip (repeatable)")
	f.String("duplicates", "", "basename collision policy: last-wins or error")
	f.BoolVar(&flags.dryRun, "dry-run", false, "assemble without writing anything")
	f.BoolVar(&flags.watch, "watch", false, "rebuild whenever a module, the manifest or the licence changes")

	rootCmd.AddCommand(newConfigCommand(app, flags))
	rootCmd.AddCommand(newAboutCommand(app))

	return rootCmd
}

// Execute runs the CLI and exits with the command's exit code.
// This is called by main.main().
func Execute() {
	app := NewApp(os.Stdout, os.Stderr)
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(normalizeArgs(rootCmd, os.Args[1:]))

	// --version is the library version, so fang's own version flag is off
	// and the tool version lives under 'about'.
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithoutVersion(),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			var exitErr *ExitError
			if errors.As(err, &exitErr) && exitErr.Rendered {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	)
	os.Exit(int(exitCode(err)))
}

// exitCode maps an Execute error to the process exit code. Errors that are
// not an ExitError come from cobra flag and argument parsing.
func exitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitUsage
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// normalizeArgs rewrites single-dash long flags (-version 1.0) to their
// double-dash form. Shorthands, values and everything after "--" are left
// alone.
func normalizeArgs(rootCmd *cobra.Command, args []string) []string {
	lookup := func(name string) *pflag.Flag {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			return f
		}
		return rootCmd.PersistentFlags().Lookup(name)
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		var flag *pflag.Flag
		if strings.HasPrefix(a, "-") && len(name) > 1 {
			flag = lookup(name)
		}
		if flag != nil && !strings.HasPrefix(a, "--") {
			a = "-" + a
		}
		out = append(out, a)

		// keep a separate value verbatim even when it starts with a dash
		if flag != nil && !hasValue && flag.NoOptDefVal == "" && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}
