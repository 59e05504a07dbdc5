// Package walker discovers candidate text files under a root directory. It
// honors gitignore semantics, a hidden-file policy, and include/exclude glob
// overrides, and filters binary content before a file ever reaches the
// visitor. File visits run concurrently on a bounded worker pool.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// maxWorkers caps the visit pool regardless of available parallelism.
const maxWorkers = 12

// Config describes one walk.
type Config struct {
	Root          string   // Directory to walk
	IncludeHidden bool     // Visit dot-files and dot-directories
	IncludeGlobs  []string // When non-empty, only matching files are visited
	ExcludeGlobs  []string // Matching files are never visited; wins over include
}

// VisitFunc is called once per discovered text file, potentially from
// multiple goroutines. The path is absolute. Returned errors are logged and
// never abort the walk.
type VisitFunc func(ctx context.Context, path string) error

// Walker walks directory trees.
type Walker struct {
	cfg Config
}

// New creates a walker for the given configuration.
func New(cfg Config) *Walker {
	return &Walker{cfg: cfg}
}

// PoolSize returns the number of concurrent file visits the walker runs.
func PoolSize() int {
	n := runtime.NumCPU()
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Walk enumerates the tree rooted at cfg.Root and invokes visit for every
// file that survives filtering. Directory discovery is sequential; visits are
// fanned out across the worker pool. Per-entry errors are logged and skipped.
func (w *Walker) Walk(ctx context.Context, visit VisitFunc) error {
	root, err := filepath.Abs(w.cfg.Root)
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}
	if _, err := os.Stat(root); err != nil {
		return errors.Errorf("reading root: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(PoolSize())

	ignores, err := ignoreStack(nil).push(root, "")
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("dir", root).Msg("reading ignore file")
	}
	w.walkDir(gctx, g, root, root, ignores, visit)

	return g.Wait()
}

// walkDir handles one directory level. Errors reading entries never propagate
// past a log line; the rest of the walk continues.
func (w *Walker) walkDir(ctx context.Context, g *errgroup.Group, root, dir string, ignores ignoreStack, visit VisitFunc) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("reading directory")
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		isDir := entry.IsDir()

		if !w.admit(ctx, name, rel, isDir, ignores) {
			continue
		}

		if isDir {
			childIgnores, err := ignores.push(path, rel)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("dir", path).Msg("reading ignore file")
				childIgnores = ignores
			}
			w.walkDir(ctx, g, root, path, childIgnores, visit)
			continue
		}

		// Symlinks and other irregular entries are not followed.
		if !entry.Type().IsRegular() {
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if LooksBinary(path) {
				return nil
			}
			if err := visit(ctx, path); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("visiting file")
			}
			return nil
		})
	}
}

// admit applies the hidden policy, gitignore rules, and the glob overrides,
// in that order. Exclude overrides beat include overrides.
func (w *Walker) admit(ctx context.Context, name, rel string, isDir bool, ignores ignoreStack) bool {
	if name == ".git" {
		return false
	}
	if !w.cfg.IncludeHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if ignores.Ignored(rel, isDir) {
		return false
	}

	for _, glob := range w.cfg.ExcludeGlobs {
		if matchOverride(ctx, glob, rel) {
			return false
		}
	}
	// Include overrides apply to files only; pruning directories here would
	// hide every file beneath them.
	if !isDir && len(w.cfg.IncludeGlobs) > 0 {
		for _, glob := range w.cfg.IncludeGlobs {
			if matchOverride(ctx, glob, rel) {
				return true
			}
		}
		return false
	}
	return true
}

// matchOverride matches an override glob against a root-relative path.
// Globs without a separator match at any depth, mirroring gitignore.
func matchOverride(ctx context.Context, glob, rel string) bool {
	if !strings.Contains(glob, "/") {
		glob = "**/" + glob
	}
	ok, err := doublestar.Match(glob, rel)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("glob", glob).Msg("matching override glob")
		return false
	}
	return ok
}

// ValidateGlobs checks override globs up front so the caller can surface
// syntax errors before a walk starts.
func ValidateGlobs(globs []string) error {
	for _, glob := range globs {
		if !doublestar.ValidatePattern(glob) {
			return errors.Errorf("invalid glob %q", glob)
		}
	}
	return nil
}
