// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue/format"
	"github.com/spf13/viper"

	"github.com/nucleojs/nucleopack/internal/issue"
	"github.com/nucleojs/nucleopack/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "nucleopack"
	// EnvPrefix prefixes environment overrides (NUCLEOPACK_ODIR, NUCLEOPACK_UI_COLOR, ...).
	EnvPrefix = "NUCLEOPACK"
	// ProjectFileName is the per-project config file looked up in the base directory.
	ProjectFileName = "nucleopack.cue"
	// UserFileName is the per-user config file in ConfigDir.
	UserFileName = "config.cue"
)

//go:embed config_schema.cue
var configSchema string

// ErrConfigNotFound is returned when an explicitly requested config file
// does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath replaces the project file lookup when set. The file must exist.
	ConfigFilePath string
	// BaseDir is where ProjectFileName is looked up. Empty means the working directory.
	BaseDir string
	// ConfigDirPath overrides the user config directory when set.
	ConfigDirPath string
	// SkipUserConfig ignores the user config file.
	SkipUserConfig bool
}

// ConfigDir returns the nucleopack user configuration directory using
// platform conventions: %APPDATA% on Windows, ~/Library/Application Support
// on macOS, and $XDG_CONFIG_HOME (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ProjectConfigPath returns the project config file path for baseDir.
func ProjectConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ProjectFileName)
}

// NewViper returns a Viper instance holding defaults, the config files that
// exist, and environment overrides, together with the files that were
// merged in load order. Callers bind flags on top.
func NewViper(ctx context.Context, opts LoadOptions) (*viper.Viper, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var loaded []string

	if !opts.SkipUserConfig {
		userPath, err := userConfigPath(opts.ConfigDirPath)
		if err == nil && fileExists(userPath) {
			if err := loadCUEIntoViper(v, userPath); err != nil {
				return nil, nil, loadError(userPath, err)
			}
			loaded = append(loaded, userPath)
		}
	}

	projectPath := opts.ConfigFilePath
	if projectPath != "" {
		if !fileExists(projectPath) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(projectPath).
				WithSuggestion("Verify the path passed with --config").
				WithSuggestion("Run 'nucleopack config init' to create a project config").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, projectPath)).
				BuildError()
		}
	} else {
		projectPath = ProjectConfigPath(opts.BaseDir)
	}
	if fileExists(projectPath) {
		if err := loadCUEIntoViper(v, projectPath); err != nil {
			return nil, nil, loadError(projectPath, err)
		}
		loaded = append(loaded, projectPath)
	}

	return v, loaded, nil
}

// Decode unmarshals and validates the effective configuration held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Ext = strings.TrimPrefix(cfg.Ext, ".")

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check values coming from flags and NUCLEOPACK_* environment variables").
			WithSuggestion("Run 'nucleopack config dump' to see the effective configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("licence", defaults.Licence)
	v.SetDefault("source", defaults.Source)
	v.SetDefault("include", defaults.Include)
	v.SetDefault("odir", defaults.Odir)
	v.SetDefault("name", defaults.Name)
	v.SetDefault("ext", defaults.Ext)
	v.SetDefault("minify", defaults.Minify)
	v.SetDefault("minifier", defaults.Minifier)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("duplicates", string(defaults.Duplicates))
	v.SetDefault("create_output_dir", defaults.CreateOutputDir)
	v.SetDefault("ui.color", string(defaults.UI.Color))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
}

func userConfigPath(configDirPath string) (string, error) {
	dir := configDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, UserFileName), nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the schema shown by 'nucleopack config show'").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper. Fields are optional, so the document is validated non-concrete and
// decoded to a map.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default project config to path. An
// existing file is never overwritten; created reports whether a file was
// written.
func CreateDefaultConfig(path string) (created bool, err error) {
	content, err := GenerateCUE(DefaultConfig())
	if err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GenerateCUE renders cfg as a gofmt-style CUE document accepted by the
// schema. Empty required settings are emitted as comments.
func GenerateCUE(cfg *Config) (string, error) {
	var sb strings.Builder

	sb.WriteString("// nucleopack project configuration.\n")
	sb.WriteString("// Flags and NUCLEOPACK_* environment variables override these values.\n\n")

	for _, f := range []struct{ key, value, example string }{
		{"version", cfg.Version, "0.1.2"},
		{"licence", cfg.Licence, "licence.txt"},
		{"source", cfg.Source, "source"},
		{"include", cfg.Include, "include.txt"},
		{"odir", cfg.Odir, "build"},
	} {
		if f.value == "" {
			fmt.Fprintf(&sb, "// %s: %q\n", f.key, f.example)
			continue
		}
		fmt.Fprintf(&sb, "%s: %q\n", f.key, f.value)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "name: %q\n", cfg.Name)
	fmt.Fprintf(&sb, "ext: %q\n", cfg.Ext)
	fmt.Fprintf(&sb, "minify: %v\n", cfg.Minify)
	if cfg.Minifier != "" {
		fmt.Fprintf(&sb, "minifier: %q\n", cfg.Minifier)
	} else {
		sb.WriteString("// minifier: \"java -jar yui.jar --type {ext} --line-break 500 {in} -o {out}\"\n")
	}

	sb.WriteString("exclude: [")
	for i, pat := range cfg.Exclude {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", pat)
	}
	sb.WriteString("]\n")

	fmt.Fprintf(&sb, "duplicates: %q\n", cfg.Duplicates)
	fmt.Fprintf(&sb, "create_output_dir: %v\n", cfg.CreateOutputDir)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor: %q\n", cfg.UI.Color)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	formatted, err := format.Source([]byte(sb.String()), format.Simplify())
	if err != nil {
		return "", fmt.Errorf("format generated config: %w", err)
	}
	return string(formatted), nil
}

// Schema returns the embedded CUE schema.
func Schema() string { return configSchema }
