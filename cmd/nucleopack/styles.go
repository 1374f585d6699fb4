// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/nucleojs/nucleopack/internal/config"
)

// Color palette shared by every diagnostic line.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for written artifacts.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings and watch-mode notices.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for paths, keys and flags.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// palette holds the styles for one output stream. A disabled palette renders
// text unchanged.
type palette struct {
	enabled bool

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Highlight lipgloss.Style
}

func newPalette(w io.Writer, enabled bool) palette {
	r := lipgloss.NewRenderer(w)
	switch {
	case !enabled:
		r.SetColorProfile(termenv.Ascii)
	case r.ColorProfile() == termenv.Ascii:
		// colour forced onto a pipe or file
		r.SetColorProfile(termenv.ANSI256)
	}

	return palette{
		enabled:   enabled,
		Title:     r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle:  r.NewStyle().Foreground(ColorMuted),
		Success:   r.NewStyle().Foreground(ColorSuccess),
		Error:     r.NewStyle().Bold(true).Foreground(ColorError),
		Warning:   r.NewStyle().Foreground(ColorWarning),
		Highlight: r.NewStyle().Foreground(ColorHighlight),
	}
}

// glamourStyle picks the help-card style matching the palette.
func (p palette) glamourStyle() string {
	if p.enabled {
		return "dark"
	}
	return "notty"
}

// colorEnabled resolves whether output to w is coloured. --no-color and a
// non-empty NO_COLOR always win over the configured mode.
func colorEnabled(mode config.ColorMode, noColor bool, getenv func(string) string, w io.Writer) bool {
	if noColor || getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
