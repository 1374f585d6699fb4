// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nucleojs/nucleopack/internal/source"
	"github.com/nucleojs/nucleopack/pkg/types"
)

const (
	// ColorAuto colours output when stderr is a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces coloured output.
	ColorAlways ColorMode = "always"
	// ColorNever disables coloured output.
	ColorNever ColorMode = "never"
)

var (
	// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrMissingSetting is returned when a required build setting is unset.
	ErrMissingSetting = errors.New("missing required setting")
)

type (
	// ColorMode selects when diagnostics are coloured.
	ColorMode string

	// InvalidColorModeError is returned when a ColorMode value is not recognized.
	// It wraps ErrInvalidColorMode for errors.Is() compatibility.
	InvalidColorModeError struct {
		Value ColorMode
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig and collects field-level errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// MissingSettingsError lists the required build settings that are unset.
	MissingSettingsError struct {
		Keys []string
	}

	// Config holds the effective build configuration.
	Config struct {
		// Version is substituted into the licence template.
		Version string `json:"version,omitempty" mapstructure:"version"`
		// Licence is the licence template path.
		Licence string `json:"licence,omitempty" mapstructure:"licence"`
		// Source is the module source root.
		Source string `json:"source,omitempty" mapstructure:"source"`
		// Include is the manifest path.
		Include string `json:"include,omitempty" mapstructure:"include"`
		// Odir is the output directory.
		Odir string `json:"odir,omitempty" mapstructure:"odir"`
		// Name is the artifact base name.
		Name string `json:"name,omitempty" mapstructure:"name"`
		// Ext is the module and artifact extension.
		Ext string `json:"ext,omitempty" mapstructure:"ext"`
		// Minify runs the minifier after the build.
		Minify bool `json:"minify,omitempty" mapstructure:"minify"`
		// Minifier is the minifier command line; empty uses the default.
		Minifier string `json:"minifier,omitempty" mapstructure:"minifier"`
		// Exclude are doublestar patterns pruned from the source walk.
		Exclude []string `json:"exclude,omitempty" mapstructure:"exclude"`
		// Duplicates is the basename collision policy.
		Duplicates source.DuplicatePolicy `json:"duplicates,omitempty" mapstructure:"duplicates"`
		// CreateOutputDir creates Odir when it is missing.
		CreateOutputDir bool `json:"create_output_dir,omitempty" mapstructure:"create_output_dir"`
		// UI configures diagnostics output.
		UI UIConfig `json:"ui,omitempty" mapstructure:"ui"`
	}

	// UIConfig configures diagnostics output.
	UIConfig struct {
		// Color selects when output is coloured.
		Color ColorMode `json:"color,omitempty" mapstructure:"color"`
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose,omitempty" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults. Required build settings are
// left empty.
func DefaultConfig() *Config {
	return &Config{
		Name:            "nucleo",
		Ext:             "js",
		Minify:          false,
		Minifier:        "",
		Exclude:         []string{},
		Duplicates:      source.DuplicateLastWins,
		CreateOutputDir: true,
		UI: UIConfig{
			Color:   ColorAuto,
			Verbose: false,
		},
	}
}

// String returns the string representation of the ColorMode.
func (m ColorMode) String() string { return string(m) }

// Validate returns an error if the ColorMode is not recognized.
func (m ColorMode) Validate() error {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return &InvalidColorModeError{Value: m}
	}
}

// Error implements the error interface.
func (e *InvalidColorModeError) Error() string {
	return fmt.Sprintf("invalid color mode %q (valid: auto, always, never)", e.Value)
}

// Unwrap returns ErrInvalidColorMode for errors.Is() compatibility.
func (e *InvalidColorModeError) Unwrap() error { return ErrInvalidColorMode }

// Validate checks the values CUE cannot: the combination of fields and
// values that may also arrive from flags or the environment.
func (c Config) Validate() error {
	var errs []error
	for _, p := range []string{c.Licence, c.Source, c.Include, c.Odir} {
		if p == "" {
			continue
		}
		if err := types.FilesystemPath(p).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Name != "" {
		if err := types.LibraryName(c.Name).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Duplicates.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.Color.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, pat := range c.Exclude {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q", pat))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the sentinel and each field's own sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// RequireBuildSettings returns a *MissingSettingsError naming every unset
// required setting (version, licence, source, include, odir).
func (c Config) RequireBuildSettings() error {
	var missing []string
	for _, f := range []struct{ key, value string }{
		{"version", c.Version},
		{"licence", c.Licence},
		{"source", c.Source},
		{"include", c.Include},
		{"odir", c.Odir},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return &MissingSettingsError{Keys: missing}
	}
	return nil
}

// Error implements the error interface.
func (e *MissingSettingsError) Error() string {
	flags := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		flags[i] = "-" + k
	}
	return fmt.Sprintf("%s: %s", ErrMissingSetting, strings.Join(flags, ", "))
}

// Unwrap returns ErrMissingSetting for errors.Is() compatibility.
func (e *MissingSettingsError) Unwrap() error { return ErrMissingSetting }
