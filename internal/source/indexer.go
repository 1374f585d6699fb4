// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

type (
	// Options configures an Indexer.
	Options struct {
		// Suffix selects module files. Empty means DefaultSuffix.
		Suffix string
		// Only, when non-nil, restricts the index to these module names;
		// other matching files are counted but never read.
		Only map[string]struct{}
		// Exclude are doublestar patterns, relative to the root with forward
		// slashes, for paths that must not be indexed (e.g. "**/vendor/**").
		Exclude []string
		// Duplicates selects collision handling. Empty means DuplicateLastWins.
		Duplicates DuplicatePolicy
		// Logger receives scan diagnostics. nil discards them.
		Logger *slog.Logger
	}

	// Indexer builds an Index from a source tree.
	Indexer struct {
		suffix     string
		only       map[string]struct{}
		exclude    []string
		duplicates DuplicatePolicy
		logger     *slog.Logger
	}
)

// NewIndexer validates opts and returns an Indexer.
func NewIndexer(opts Options) (*Indexer, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	dup := opts.Duplicates
	if dup == "" {
		dup = DuplicateLastWins
	}
	if err := dup.Validate(); err != nil {
		return nil, err
	}

	for _, pat := range opts.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pat)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Indexer{
		suffix:     suffix,
		only:       opts.Only,
		exclude:    append([]string(nil), opts.Exclude...),
		duplicates: dup,
		logger:     logger,
	}, nil
}

// Build walks root in lexical order and indexes every module file. The walk
// order makes "last scanned" deterministic for a given tree.
func (ix *Indexer) Build(ctx context.Context, root string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFileNotFound, root)
	}

	idx := NewIndex(root)
	skipped := 0

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			return walkDirErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel != "." && ix.isExcluded(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isRegularFile(path, d) {
			return nil
		}

		name, ok := ModuleName(d.Name(), ix.suffix)
		if !ok {
			return nil
		}
		idx.Scanned++

		if ix.only != nil {
			if _, wanted := ix.only[name]; !wanted {
				skipped++
				return nil
			}
		}

		if prev, exists := idx.Lookup(name); exists && ix.duplicates == DuplicateError {
			return &DuplicateModuleError{Name: name, First: prev.Path, Second: path}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read module %s: %w", path, err)
		}

		if !idx.Add(Module{Name: name, Path: path, Content: string(data)}) {
			last := idx.Collisions[len(idx.Collisions)-1]
			ix.logger.Warn("duplicate module name, keeping last scanned",
				"module", name, "kept", last.Kept, "dropped", last.Dropped)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	ix.logger.Debug("indexed source tree",
		"root", root, "suffix", ix.suffix, "matched", idx.Scanned, "indexed", idx.Len(), "skipped", skipped)
	return idx, nil
}

// isExcluded reports whether rel matches an exclude pattern. Directories are
// also tested with a trailing slash so "dir/**" prunes the whole subtree.
func (ix *Indexer) isExcluded(rel string, isDir bool) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range ix.exclude {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
		if isDir {
			if matched, err := doublestar.Match(pat, normalized+"/"); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// isRegularFile reports whether d is a regular file, following a symlink
// entry one level so linked module files are indexed like plain ones.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
