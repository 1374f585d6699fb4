// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// newLogger returns the slog logger used by every build stage, backed by a
// charmbracelet/log handler on w.
func newLogger(w io.Writer, verbose, color bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "nucleopack",
		Level:           level,
		ReportTimestamp: false,
	})
	if !color {
		handler.SetColorProfile(termenv.Ascii)
	}

	return slog.New(handler)
}
