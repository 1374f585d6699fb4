// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nucleojs/nucleopack/internal/config"
	"github.com/nucleojs/nucleopack/internal/packager"
)

// errUsage marks flag combinations rejected before any work starts.
var errUsage = errors.New("invalid usage")

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = []struct{ key, flag string }{
	{"version", "version"},
	{"licence", "licence"},
	{"source", "source"},
	{"include", "include"},
	{"odir", "odir"},
	{"name", "name"},
	{"ext", "ext"},
	{"minify", "minify"},
	{"minifier", "minifier"},
	{"exclude", "exclude"},
	{"duplicates", "duplicates"},
	{"ui.verbose", "verbose"},
}

// session is the per-invocation state derived from the effective config.
type session struct {
	cfg     *config.Config
	loaded  []string
	stdout  palette
	stderr  palette
	logger  *slog.Logger
	verbose bool
}

func runBuild(cmd *cobra.Command, app *App, flags *rootFlags) error {
	s, err := app.newSession(cmd, flags)
	if err != nil {
		return err
	}

	if flags.watch && flags.dryRun {
		return app.fail(s, fmt.Errorf("%w: --watch and --dry-run cannot be used together", errUsage))
	}
	if err := s.cfg.RequireBuildSettings(); err != nil {
		return app.fail(s, err)
	}

	if flags.watch {
		return runWatch(cmd.Context(), app, s)
	}

	res, err := packager.Run(cmd.Context(), buildOptions(s.cfg, flags.dryRun), s.logger)
	if res != nil {
		app.report(s, res)
	}
	if err != nil {
		return app.fail(s, err)
	}
	return nil
}

// newSession loads the effective configuration for cmd. A load failure is
// rendered with default styling and returned as an *ExitError.
func (a *App) newSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	cfg, loaded, err := a.loadConfig(cmd, flags)
	if err != nil {
		fallback := config.DefaultConfig()
		fallback.UI.Verbose, _ = cmd.Flags().GetBool("verbose")
		return nil, a.fail(a.sessionFor(fallback, flags.noColor), err)
	}
	s := a.sessionFor(cfg, flags.noColor)
	s.loaded = loaded
	return s, nil
}

func (a *App) sessionFor(cfg *config.Config, noColor bool) *session {
	errColor := colorEnabled(cfg.UI.Color, noColor, a.getenv, a.stderr)
	return &session{
		cfg:     cfg,
		stdout:  newPalette(a.stdout, colorEnabled(cfg.UI.Color, noColor, a.getenv, a.stdout)),
		stderr:  newPalette(a.stderr, errColor),
		logger:  newLogger(a.stderr, cfg.UI.Verbose, errColor),
		verbose: cfg.UI.Verbose,
	}
}

// loadConfig merges config files, environment and the flags set on cmd.
func (a *App) loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, []string, error) {
	v, loaded, err := config.NewViper(cmd.Context(), config.LoadOptions{
		ConfigFilePath: flags.configPath,
		BaseDir:        a.baseDir,
		ConfigDirPath:  a.configDir,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return nil, nil, err
	}
	if flags.noColor {
		cfg.UI.Color = config.ColorNever
	}
	return cfg, loaded, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", fk.flag, err)
		}
	}
	return nil
}

func buildOptions(cfg *config.Config, dryRun bool) packager.Options {
	return packager.Options{
		Version:         cfg.Version,
		LicencePath:     cfg.Licence,
		SourceDir:       cfg.Source,
		ManifestPath:    cfg.Include,
		OutputDir:       cfg.Odir,
		LibName:         cfg.Name,
		Ext:             cfg.Ext,
		Minify:          cfg.Minify,
		Minifier:        cfg.Minifier,
		Exclude:         cfg.Exclude,
		Duplicates:      cfg.Duplicates,
		DryRun:          dryRun,
		CreateOutputDir: cfg.CreateOutputDir,
	}
}

// report prints what a build produced.
func (a *App) report(s *session, res *packager.Result) {
	p := s.stdout
	if !res.Written {
		fmt.Fprintf(a.stdout, "%s %s would hold %d modules (%d bytes)\n",
			p.Warning.Render("Dry run:"), p.Highlight.Render(res.OutputPath), res.Modules, res.Bytes)
		return
	}

	fmt.Fprintf(a.stdout, "%s Wrote %s (%d modules, %d bytes)\n",
		p.Success.Render("✓"), p.Highlight.Render(res.OutputPath), res.Modules, res.Bytes)
	if res.MinifiedPath != "" {
		fmt.Fprintf(a.stdout, "%s Wrote %s (%d bytes)\n",
			p.Success.Render("✓"), p.Highlight.Render(res.MinifiedPath), res.MinifiedBytes)
	}
}

// fail renders err and wraps it with its exit code.
func (a *App) fail(s *session, err error) error {
	d := renderError(a.stderr, s.stderr, err, s.verbose)
	return &ExitError{Code: d.Code, Err: err, Rendered: true}
}
