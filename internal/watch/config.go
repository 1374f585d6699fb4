// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the directory watched recursively. Patterns and Ignore
		// are relative to it. Empty means the working directory.
		BaseDir string

		// Patterns are doublestar globs (e.g. "**/*.js") selecting which files
		// under BaseDir trigger a callback. Empty watches every non-ignored file.
		Patterns []string

		// Ignore are additional doublestar globs for paths under BaseDir that
		// never trigger a callback. They are merged with the default ignores.
		Ignore []string

		// Files are individual files, possibly outside BaseDir, that always
		// trigger a callback when they change (e.g. the manifest).
		Files []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values use defaultDebounce.
		Debounce time.Duration

		// OnChange receives the deduplicated changed paths: relative to
		// BaseDir for tree files, absolute for Files. A nil callback is a
		// no-op. Errors are logged and watching continues.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher diagnostics. nil discards them.
		Logger *slog.Logger
	}

	// InvalidWatchConfigError collects the invalid fields of a Config.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}
)

// Validate checks every glob and path in the Config.
func (c Config) Validate() error {
	var errs []error
	for _, pat := range c.Patterns {
		if err := validatePattern(pat, "watch"); err != nil {
			errs = append(errs, err)
		}
	}
	for _, pat := range c.Ignore {
		if err := validatePattern(pat, "ignore"); err != nil {
			errs = append(errs, err)
		}
	}
	if c.BaseDir != "" && strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, fmt.Errorf("base directory %q is whitespace-only", c.BaseDir))
	}
	for _, f := range c.Files {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, errors.New("watched file path is empty"))
		}
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidWatchConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidWatchConfig, strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

func validatePattern(pat, label string) error {
	if pat == "" {
		return fmt.Errorf("empty %s pattern", label)
	}
	if !doublestar.ValidatePattern(pat) {
		return fmt.Errorf("invalid %s pattern %q", label, pat)
	}
	return nil
}
