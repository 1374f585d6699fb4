// SPDX-License-Identifier: MPL-2.0

// Package packager runs the build pipeline: render the licence, read the
// manifest, index the source tree, assemble, write, and optionally minify.
//
// Every stage failure is wrapped in an issue.ActionableError carrying the
// catalogue id of the problem, so callers can render help for it.
package packager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nucleojs/nucleopack/internal/assemble"
	"github.com/nucleojs/nucleopack/internal/issue"
	"github.com/nucleojs/nucleopack/internal/licence"
	"github.com/nucleojs/nucleopack/internal/manifest"
	"github.com/nucleojs/nucleopack/internal/minify"
	"github.com/nucleojs/nucleopack/internal/output"
	"github.com/nucleojs/nucleopack/internal/source"
	"github.com/nucleojs/nucleopack/pkg/types"
)

const (
	// DefaultLibName is the base name of the produced library.
	DefaultLibName = "nucleo"
	// DefaultExt is the extension of module files and of the library.
	DefaultExt = "js"
)

// ErrInvalidOptions is returned when Options fail validation.
var ErrInvalidOptions = errors.New("invalid packager options")

type (
	// Options are the inputs of one build.
	Options struct {
		// Version is substituted into the licence template.
		Version string
		// LicencePath is the licence template file.
		LicencePath string
		// SourceDir is the root of the module source tree.
		SourceDir string
		// ManifestPath is the ordered module list.
		ManifestPath string
		// OutputDir receives the artifacts.
		OutputDir string
		// LibName is the artifact base name. Empty means DefaultLibName.
		LibName string
		// Ext is the module and artifact extension without a dot. Empty
		// means DefaultExt.
		Ext string
		// Minify runs the minifier after writing the library.
		Minify bool
		// Minifier is the minifier command line. Empty means
		// minify.DefaultCommand.
		Minifier string
		// Exclude are doublestar patterns pruned from the source walk.
		Exclude []string
		// Duplicates selects how basename collisions are handled.
		Duplicates source.DuplicatePolicy
		// DryRun assembles without writing anything.
		DryRun bool
		// CreateOutputDir creates OutputDir when it is missing.
		CreateOutputDir bool
	}

	// Result summarizes a finished build.
	Result struct {
		// Version is the version the licence was rendered with.
		Version string
		// OutputPath is the library path (set even for dry runs).
		OutputPath string
		// MinifiedPath is the minified library path, empty unless minified.
		MinifiedPath string
		// Modules is the number of modules concatenated.
		Modules int
		// Bytes is the size of the library.
		Bytes int
		// MinifiedBytes is the size of the minified library.
		MinifiedBytes int
		// Written is false for dry runs.
		Written bool
		// Collisions lists basename collisions resolved by last-wins.
		Collisions []source.Collision
		// Duplicates lists module names the manifest lists more than once.
		Duplicates []manifest.Duplicate
		// Library is the assembled library.
		Library *assemble.Library
	}
)

// Validate checks required fields and normalizes defaults in place.
func (o *Options) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"version", o.Version},
		{"licence", o.LicencePath},
		{"source", o.SourceDir},
		{"include", o.ManifestPath},
		{"odir", o.OutputDir},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required setting(s): %s", ErrInvalidOptions, strings.Join(missing, ", "))
	}

	if o.LibName == "" {
		o.LibName = DefaultLibName
	}
	if err := types.LibraryName(o.LibName).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	o.Ext = strings.TrimPrefix(o.Ext, ".")
	if o.Ext == "" {
		o.Ext = DefaultExt
	}
	if strings.ContainsAny(o.Ext, `/\`) {
		return fmt.Errorf("%w: invalid extension %q", ErrInvalidOptions, o.Ext)
	}
	if o.Duplicates == "" {
		o.Duplicates = source.DuplicateLastWins
	}
	if err := o.Duplicates.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// Run executes one build. Any failure aborts the run; when assembly fails
// nothing is written.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lic, err := licence.Load(opts.LicencePath, opts.Version)
	if err != nil {
		return nil, licenceError(opts.LicencePath, err)
	}
	logger.Debug("rendered licence", "path", opts.LicencePath, "version", opts.Version)

	man, err := manifest.Read(opts.ManifestPath)
	if err != nil {
		return nil, fileError("read manifest", opts.ManifestPath, err,
			"Check the path passed with -include")
	}
	dups := man.Duplicates()
	for _, d := range dups {
		logger.Warn("module listed more than once", "module", d.Name, "lines", d.Lines)
	}
	logger.Debug("read manifest", "path", opts.ManifestPath, "modules", man.Len(), "blank", man.SkippedBlank)

	var minifier *minify.Minifier
	if opts.Minify {
		if minifier, err = minify.New(minify.Options{Command: opts.Minifier, Logger: logger}); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("configure minifier").
				WithResource(opts.Minifier).
				WithSuggestion("Pass a single command, e.g. --minifier 'java -jar yui.jar --type {ext} {in} -o {out}'").
				WithIssue(issue.MinifierFailedId).
				Wrap(err).
				BuildError()
		}
	}

	indexer, err := source.NewIndexer(source.Options{
		Suffix:     "." + opts.Ext,
		Only:       man.Set(),
		Exclude:    opts.Exclude,
		Duplicates: opts.Duplicates,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	idx, err := indexer.Build(ctx, opts.SourceDir)
	if err != nil {
		return nil, indexError(opts.SourceDir, err)
	}

	lib, err := assemble.Assemble(man.Names(), assemble.LookupFunc(idx.Content), lic.Text)
	if err != nil {
		return nil, assembleError(opts, err)
	}

	libPath, minPath := output.Paths(opts.OutputDir, opts.LibName, opts.Ext)
	res := &Result{
		Version:    opts.Version,
		OutputPath: libPath,
		Modules:    len(lib.Modules),
		Bytes:      lib.Len(),
		Collisions: idx.Collisions,
		Duplicates: dups,
		Library:    lib,
	}

	if opts.DryRun {
		logger.Info("dry run, nothing written", "output", libPath, "modules", res.Modules, "bytes", res.Bytes)
		return res, nil
	}

	if err := output.EnsureDir(opts.OutputDir, opts.CreateOutputDir); err != nil {
		return nil, writeError(opts.OutputDir, err)
	}
	if err := output.WriteFile(libPath, lib.Data); err != nil {
		return nil, writeError(libPath, err)
	}
	res.Written = true
	logger.Debug("wrote library", "path", libPath, "bytes", res.Bytes)

	if minifier == nil {
		return res, nil
	}

	// The minifier's success is judged by the file it writes, so an
	// artifact from an earlier build must not survive into this one.
	if err := output.RemoveStale(minPath); err != nil {
		return res, writeError(minPath, err)
	}
	if err := minifier.Run(ctx, libPath, minPath); err != nil {
		return res, issue.NewErrorContext().
			WithOperation("minify library").
			WithResource(libPath).
			WithSuggestion("Check that the minifier is installed and runs from the working directory").
			WithSuggestion("Set a different command with --minifier or the 'minifier' config key").
			WithIssue(issue.MinifierFailedId).
			Wrap(err).
			BuildError()
	}
	if err := output.Prepend(minPath, []byte(lic.Text)); err != nil {
		return res, writeError(minPath, err)
	}
	res.MinifiedPath = minPath
	res.MinifiedBytes = minifiedSize(minPath)
	logger.Debug("wrote minified library", "path", minPath, "bytes", res.MinifiedBytes)

	return res, nil
}
