// SPDX-License-Identifier: MPL-2.0

// Package watch rebuilds on file changes.
//
// A Watcher monitors a directory tree plus a few individual files and
// invokes a callback after a debounce period. Events inside the debounce
// window are coalesced, and callbacks never run concurrently.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces editor write-then-rename sequences into one rebuild.
const defaultDebounce = 300 * time.Millisecond

// defaultIgnores are never watched: VCS metadata, dependency caches,
// editor swap files and OS metadata.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.#*",
	"**/.DS_Store",
}

// Watcher monitors filesystem paths and fires a debounced callback when
// matching files change. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	files    map[string]struct{}
	logger   *slog.Logger
	debounce time.Duration
	baseDir  string
	started  atomic.Bool
}

// New validates cfg, resolves BaseDir, and registers every non-ignored
// directory under it plus the parent directory of each extra file.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	files := make(map[string]struct{}, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		files[abs] = struct{}{}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		files:    files,
		logger:   logger,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("watch: close after init failure", "error", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may run from time.AfterFunc after cancellation, so it re-checks
	// ctx. A busy callback reschedules instead of running concurrently.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("watch: rebuild in progress, deferring")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("watch: rebuild failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil {
			localTimer.Stop()
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("watch: close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			key, ok := w.classify(evt)
			if !ok {
				continue
			}

			mu.Lock()
			pending[key] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// classify maps an event to its pending-set key, reporting false for events
// that must not trigger a rebuild.
func (w *Watcher) classify(evt fsnotify.Event) (string, bool) {
	name := filepath.Clean(evt.Name)
	if _, ok := w.files[name]; ok {
		return name, true
	}

	rel, err := filepath.Rel(w.baseDir, name)
	if err != nil || !filepath.IsLocal(rel) {
		// sibling of an extra file outside the tree
		return "", false
	}
	if w.isIgnored(rel) {
		return "", false
	}

	// new directories extend the recursive watch
	if evt.Has(fsnotify.Create) {
		w.maybeAddDir(name)
	}

	if !w.matchesPatterns(rel) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// addDirectories registers BaseDir recursively, skipping ignored and
// unreadable directories, then the parent of each extra file.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			if path == w.baseDir {
				return walkDirErr
			}
			w.logger.Warn("watch: skipping inaccessible path", "path", path, "error", walkDirErr)
			return nil //nolint:nilerr // unreadable subdirectories are not watched
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}

	for f := range w.files {
		dir := filepath.Dir(f)
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
	}
	return nil
}

// maybeAddDir adds path when it is a non-ignored directory created after
// the initial walk.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}

	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("watch: add new directory", "path", path, "error", addErr)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// matchesPatterns reports whether rel matches a watch pattern. No patterns
// means everything matches.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	return matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}
