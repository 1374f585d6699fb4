// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/nucleojs/nucleopack/internal/config"
	"github.com/nucleojs/nucleopack/internal/output"
	"github.com/nucleojs/nucleopack/internal/packager"
	"github.com/nucleojs/nucleopack/internal/watch"
)

// runWatch builds once, then rebuilds whenever a module, the manifest or the
// licence changes. It blocks until ctx is cancelled (e.g., Ctrl+C). A failed
// build is reported and watching continues.
func runWatch(ctx context.Context, app *App, s *session) error {
	opts := buildOptions(s.cfg, false)
	arrow := s.stdout.Highlight.Render("→")

	rebuild := func(ctx context.Context) {
		res, err := packager.Run(ctx, opts, s.logger)
		if res != nil {
			app.report(s, res)
		}
		if err != nil && ctx.Err() == nil {
			renderError(app.stderr, s.stderr, err, s.verbose)
		}
	}

	wcfg, err := watchConfig(s.cfg)
	if err != nil {
		return app.fail(s, err)
	}
	wcfg.Logger = s.logger
	wcfg.OnChange = func(ctx context.Context, changed []string) error {
		fmt.Fprintf(app.stdout, "%s Detected %d change(s), rebuilding...\n", arrow, len(changed))
		s.logger.Debug("changed files", "paths", changed)
		rebuild(ctx)
		fmt.Fprintf(app.stdout, "\n%s Watching for changes...\n\n", arrow)
		return nil
	}

	w, err := watch.New(wcfg)
	if err != nil {
		return app.fail(s, err)
	}

	fmt.Fprintf(app.stdout, "%s Watch mode: initial build\n", arrow)
	rebuild(ctx)
	fmt.Fprintf(app.stdout, "\n%s Watching %s for changes (Ctrl+C to stop)...\n\n", arrow, s.cfg.Source)

	if err := w.Run(ctx); err != nil {
		return app.fail(s, err)
	}
	return nil
}

// watchConfig watches every module file under the source directory plus the
// manifest and the licence. Build outputs inside the source tree are ignored
// so that writing them does not trigger another build.
func watchConfig(cfg *config.Config) (watch.Config, error) {
	ext := cfg.Ext
	if ext == "" {
		ext = packager.DefaultExt
	}
	name := cfg.Name
	if name == "" {
		name = packager.DefaultLibName
	}

	absSource, err := filepath.Abs(cfg.Source)
	if err != nil {
		return watch.Config{}, fmt.Errorf("resolve source directory: %w", err)
	}
	absOdir, err := filepath.Abs(cfg.Odir)
	if err != nil {
		return watch.Config{}, fmt.Errorf("resolve output directory: %w", err)
	}

	ignore := slices.Clone(cfg.Exclude)
	if rel, relErr := filepath.Rel(absSource, absOdir); relErr == nil && filepath.IsLocal(rel) && rel != "." {
		ignore = append(ignore, filepath.ToSlash(rel)+"/**")
	}
	lib, minified := output.Paths(absOdir, name, ext)
	for _, artifact := range []string{lib, minified} {
		if rel, relErr := filepath.Rel(absSource, artifact); relErr == nil && filepath.IsLocal(rel) {
			ignore = append(ignore, filepath.ToSlash(rel))
		}
	}

	return watch.Config{
		BaseDir:  absSource,
		Patterns: []string{"**/*." + ext},
		Ignore:   ignore,
		Files:    []string{cfg.Include, cfg.Licence},
	}, nil
}
