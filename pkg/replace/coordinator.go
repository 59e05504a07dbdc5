// Package replace rewrites matched files. Each file is an independent unit
// of work: its lines stream through a sibling temporary file that atomically
// replaces the original on success, so a crash never leaves a partial file
// in place. Files rewrite concurrently under a counting semaphore; lines
// within a file rewrite strictly in order.
package replace

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/retext/pkg/search"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency caps simultaneous in-flight file rewrites.
const DefaultConcurrency = 8

// ReasonFileChanged is recorded when a target line's content no longer
// matches what the search run saw.
const ReasonFileChanged = "File changed since last search"

// Options parameterize a replace run.
type Options struct {
	Concurrency int64 // Max concurrent file rewrites; defaults when <= 0
}

// Run rewrites every file referenced by records and returns the same records
// with Outcome populated. Only records with Included true should be passed
// in; the caller freezes that set before calling. Cancellation stops new
// files from being scheduled, but files already rewriting run to completion
// so no partially-written output is ever left behind.
func Run(ctx context.Context, records []*search.Match, token *search.CancellationToken, opts Options) []*search.Match {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	byPath := groupByPath(records)
	sem := semaphore.NewWeighted(concurrency)
	var wg sync.WaitGroup

	for _, group := range byPath {
		if token.Cancelled() {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		group := group
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			rewriteFile(ctx, group.path, group.records)
		}()
	}

	wg.Wait()
	return records
}

// fileGroup keeps one file's records in discovery order.
type fileGroup struct {
	path    string
	records []*search.Match
}

// groupByPath buckets records per file, preserving first-seen file order so
// scheduling is deterministic for a given input.
func groupByPath(records []*search.Match) []*fileGroup {
	index := make(map[string]*fileGroup)
	var groups []*fileGroup
	for _, rec := range records {
		group, ok := index[rec.Path]
		if !ok {
			group = &fileGroup{path: rec.Path}
			index[rec.Path] = group
			groups = append(groups, group)
		}
		group.records = append(group.records, rec)
	}
	return groups
}

// rewriteFile streams one file through a sibling temp file and renames it
// over the original. Any file-system failure before the rename marks every
// record for the file and leaves the original untouched.
func rewriteFile(ctx context.Context, path string, records []*search.Match) {
	pending := make(map[int]*search.Match, len(records))
	for _, rec := range records {
		pending[rec.LineNumber] = rec
	}

	dir := filepath.Dir(path)
	if dir == path {
		// A root path has no parent to host the temp file.
		markAll(records, "no parent directory for "+path)
		return
	}

	src, err := os.Open(path)
	if err != nil {
		markAll(records, err.Error())
		return
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		markAll(records, err.Error())
		return
	}

	// Same directory as the original so the final rename stays on one
	// filesystem and is atomic.
	tmp, err := os.CreateTemp(dir, ".retext-*")
	if err != nil {
		markAll(records, err.Error())
		return
	}
	tmpPath := tmp.Name()
	discard := func(reason string) {
		tmp.Close()
		os.Remove(tmpPath)
		markAll(records, reason)
	}

	w := bufio.NewWriter(tmp)
	reader := search.NewLineReader(src)
	lineNumber := 0
	for {
		line, ending, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			discard(err.Error())
			return
		}
		lineNumber++

		out := line
		if rec, ok := pending[lineNumber]; ok {
			if line == rec.OriginalLine {
				out = rec.Replacement
				rec.Outcome = search.SuccessOutcome()
			} else {
				rec.Outcome = search.ErrorOutcome(ReasonFileChanged)
			}
		}

		if _, err := w.WriteString(out + ending.Terminator()); err != nil {
			discard(err.Error())
			return
		}
	}

	if err := w.Flush(); err != nil {
		discard(err.Error())
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		markAll(records, err.Error())
		return
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		os.Remove(tmpPath)
		markAll(records, err.Error())
		return
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		markAll(records, err.Error())
		return
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", path).
		Int("records", len(records)).
		Msg("rewrote file")
}

// markAll overwrites every record's outcome with the same failure. This runs
// when the file as a whole could not be rewritten, so earlier per-line
// successes no longer hold.
func markAll(records []*search.Match, reason string) {
	for _, rec := range records {
		rec.Outcome = search.ErrorOutcome(reason)
	}
}
