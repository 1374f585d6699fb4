// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/nucleojs/nucleopack/internal/assemble"
	"github.com/nucleojs/nucleopack/internal/config"
	"github.com/nucleojs/nucleopack/internal/issue"
	"github.com/nucleojs/nucleopack/internal/packager"
	"github.com/nucleojs/nucleopack/internal/watch"
	"github.com/nucleojs/nucleopack/pkg/types"
)

// diagnosis is the CLI view of a failed command.
type diagnosis struct {
	IssueID     issue.Id
	Code        types.ExitCode
	Message     string
	Suggestions []string
}

// classifyError maps an error chain to its exit code, catalogue entry and
// the message shown to the user.
func classifyError(err error) diagnosis {
	d := diagnosis{Code: types.ExitFailure, Message: err.Error()}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		d.IssueID = ae.Id
		d.Suggestions = ae.Suggestions
	}

	var missing *assemble.MissingModuleError
	switch {
	case errors.As(err, &missing):
		d.Message = fmt.Sprintf("There is no file associated to module %q. Please check.", missing.Name)
	case errors.Is(err, config.ErrMissingSetting):
		d.Code = types.ExitUsage
		d.Suggestions = append(d.Suggestions,
			"Pass the settings as flags (e.g. -odir dist)",
			"Or set them in "+config.ProjectFileName+" or as NUCLEOPACK_<KEY> environment variables")
	case d.IssueID == issue.ConfigLoadFailedId,
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, packager.ErrInvalidOptions),
		errors.Is(err, watch.ErrInvalidWatchConfig),
		errors.Is(err, errUsage):
		d.Code = types.ExitUsage
	}

	return d
}

// renderError writes the help card, the error line, its suggestions and,
// when verbose, the error chain.
func renderError(w io.Writer, p palette, err error, verbose bool) diagnosis {
	d := classifyError(err)

	if entry := issue.Get(d.IssueID); entry != nil {
		if rendered, renderErr := entry.Render(p.glamourStyle()); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}

	fmt.Fprintf(w, "%s %s\n", p.Error.Render("Error:"), d.Message)
	for _, s := range d.Suggestions {
		fmt.Fprintf(w, "  • %s\n", s)
	}

	if verbose {
		fmt.Fprintf(w, "\n%s\n", p.Subtitle.Render("Error chain:"))
		for depth, e := 1, err; e != nil; depth, e = depth+1, errors.Unwrap(e) {
			fmt.Fprintf(w, "  %d. %s\n", depth, e.Error())
		}
	}

	return d
}
