// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"
	"os"

	"github.com/nucleojs/nucleopack/internal/assemble"
	"github.com/nucleojs/nucleopack/internal/issue"
	"github.com/nucleojs/nucleopack/internal/licence"
	"github.com/nucleojs/nucleopack/internal/source"
)

func fileError(op, path string, err error, suggestions ...string) error {
	ec := issue.NewErrorContext().
		WithOperation(op).
		WithResource(path).
		Wrap(err)
	for _, s := range suggestions {
		ec.WithSuggestion(s)
	}
	if errors.Is(err, os.ErrNotExist) {
		ec.WithIssue(issue.FileNotFoundId)
	}
	return ec.BuildError()
}

func licenceError(path string, err error) error {
	if errors.Is(err, licence.ErrFormatMismatch) {
		return issue.NewErrorContext().
			WithOperation("render licence").
			WithResource(path).
			WithSuggestion("The template needs exactly one %s slot for the version").
			WithSuggestion("Write a literal percent sign as %%").
			WithIssue(issue.LicenceFormatId).
			Wrap(err).
			BuildError()
	}
	return fileError("read licence", path, err, "Check the path passed with -licence")
}

func indexError(root string, err error) error {
	var dupErr *source.DuplicateModuleError
	if errors.As(err, &dupErr) {
		return issue.NewErrorContext().
			WithOperation("index sources").
			WithResource(root).
			WithSuggestionf("Rename one of %s or %s", dupErr.First, dupErr.Second).
			WithSuggestion("Exclude one copy with --exclude, or use --duplicates last-wins").
			WithIssue(issue.DuplicateModuleId).
			Wrap(err).
			BuildError()
	}
	return fileError("index sources", root, err, "Check the path passed with -source")
}

func assembleError(opts Options, err error) error {
	var missing *assemble.MissingModuleError
	if !errors.As(err, &missing) {
		return fmt.Errorf("assemble library: %w", err)
	}
	return issue.NewErrorContext().
		WithOperation("assemble library").
		WithResource(opts.ManifestPath).
		WithSuggestionf("Add %s.%s under %s", missing.Name, opts.Ext, opts.SourceDir).
		WithSuggestionf("Or remove %q from the manifest", missing.Name).
		WithIssue(issue.ModuleNotFoundId).
		Wrap(err).
		BuildError()
}

func writeError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write output").
		WithResource(path).
		WithSuggestion("Check that the output directory exists and is writable").
		WithIssue(issue.OutputWriteFailedId).
		Wrap(err).
		BuildError()
}

func minifiedSize(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(info.Size())
}
