// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nucleojs/nucleopack/internal/config"
)

// newConfigCommand creates the `nucleopack config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create nucleopack configuration",
		Long: `Inspect and create nucleopack configuration.

Settings are merged in this order, later sources winning:
  1. built-in defaults
  2. the user config (` + config.UserFileName + ` in the nucleopack config directory)
  3. the project config (./` + config.ProjectFileName + `, or --config <path>)
  4. NUCLEOPACK_* environment variables (e.g. NUCLEOPACK_ODIR)
  5. command-line flags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd, flags)
			if err != nil {
				return err
			}
			app.showConfig(s)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default " + config.ProjectFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.initConfig(flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.showConfigPath(flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd, flags)
			if err != nil {
				return err
			}
			cueContent, err := config.GenerateCUE(s.cfg)
			if err != nil {
				return app.fail(s, err)
			}
			fmt.Fprint(app.stdout, cueContent)
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(s *session) {
	p := s.stdout
	cfg := s.cfg

	fmt.Fprintln(a.stdout, p.Title.Render("Current Configuration"))
	fmt.Fprintln(a.stdout)

	if len(s.loaded) == 0 {
		fmt.Fprintf(a.stdout, "%s: %s\n", p.Highlight.Render("Config files"), p.Subtitle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(a.stdout, "%s:\n", p.Highlight.Render("Config files"))
		for _, path := range s.loaded {
			fmt.Fprintf(a.stdout, "  - %s\n", path)
		}
	}
	fmt.Fprintln(a.stdout)

	value := func(v string) string {
		if v == "" {
			return p.Subtitle.Render("(unset)")
		}
		return p.Success.Render(v)
	}
	for _, kv := range []struct{ key, value string }{
		{"version", cfg.Version},
		{"licence", cfg.Licence},
		{"source", cfg.Source},
		{"include", cfg.Include},
		{"odir", cfg.Odir},
		{"name", cfg.Name},
		{"ext", cfg.Ext},
		{"minify", fmt.Sprintf("%v", cfg.Minify)},
		{"minifier", cfg.Minifier},
		{"exclude", strings.Join(cfg.Exclude, ", ")},
		{"duplicates", cfg.Duplicates.String()},
		{"create_output_dir", fmt.Sprintf("%v", cfg.CreateOutputDir)},
	} {
		fmt.Fprintf(a.stdout, "%s: %s\n", p.Highlight.Render(kv.key), value(kv.value))
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", p.Highlight.Render("ui"))
	fmt.Fprintf(a.stdout, "  color: %s\n", value(cfg.UI.Color.String()))
	fmt.Fprintf(a.stdout, "  verbose: %s\n", value(fmt.Sprintf("%v", cfg.UI.Verbose)))

	if err := cfg.RequireBuildSettings(); err != nil {
		fmt.Fprintf(a.stdout, "\n%s %v\n", p.Warning.Render("!"), err)
	}
}

func (a *App) projectConfigPath(flags *rootFlags) string {
	if flags.configPath != "" {
		return flags.configPath
	}
	return config.ProjectConfigPath(a.baseDir)
}

func (a *App) initConfig(flags *rootFlags) error {
	s := a.sessionFor(config.DefaultConfig(), flags.noColor)
	path := a.projectConfigPath(flags)

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return a.fail(s, err)
	}
	if !created {
		fmt.Fprintf(a.stdout, "%s %s already exists, left unchanged\n", s.stdout.Warning.Render("!"), path)
		return nil
	}

	fmt.Fprintf(a.stdout, "%s Created default configuration at %s\n", s.stdout.Success.Render("✓"), path)
	return nil
}

func (a *App) showConfigPath(flags *rootFlags) error {
	s := a.sessionFor(config.DefaultConfig(), flags.noColor)
	p := s.stdout

	state := func(path string) string {
		if _, err := os.Stat(path); err != nil {
			return p.Subtitle.Render("(not found)")
		}
		return p.Success.Render("(exists)")
	}

	project := a.projectConfigPath(flags)
	fmt.Fprintf(a.stdout, "Project config: %s %s\n", project, state(project))

	dir := a.configDir
	if dir == "" {
		var err error
		if dir, err = config.ConfigDir(); err != nil {
			return a.fail(s, err)
		}
	}
	user := filepath.Join(dir, config.UserFileName)
	fmt.Fprintf(a.stdout, "User config: %s %s\n", user, state(user))
	return nil
}
