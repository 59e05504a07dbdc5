// Package search streams pattern matches out of a directory tree. The
// coordinator drives the walker across its worker pool, applies the compiled
// pattern per line, and pushes one batch of matches per file to a consumer
// channel. It is cancellable between files and between batches, and a single
// file's I/O problems never fail the run.
package search

import (
	"context"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/retext/pkg/matcher"
	"github.com/walteh/retext/pkg/walker"
)

// maxDecodeErrors is how many undecodable lines a file may produce before the
// remainder of that file is abandoned.
const maxDecodeErrors = 10

// defaultBatchBuffer sizes the batch channel. Workers block once the consumer
// falls this far behind, which bounds memory without stalling a prompt
// consumer.
const defaultBatchBuffer = 64

// Completion tells the consumer how a run ended.
type Completion int

const (
	CompletionFinished Completion = iota
	CompletionCancelled
)

// String returns a string representation of Completion
func (c Completion) String() string {
	if c == CompletionCancelled {
		return "cancelled"
	}
	return "finished"
}

// Config parameterizes a search run.
type Config struct {
	Walk        walker.Config
	Replacement string // Replacement template applied to every matched line
	BatchBuffer int    // Batch channel capacity; defaults when zero
}

// Coordinator runs one search. Create a fresh coordinator per run; batches
// and the completion signal are single-use.
type Coordinator struct {
	pattern *matcher.Pattern
	cfg     Config
	token   *CancellationToken

	batches chan []*Match
	done    chan Completion
}

// NewCoordinator prepares a run with the given compiled pattern. The token
// may be nil when the caller never cancels.
func NewCoordinator(pattern *matcher.Pattern, cfg Config, token *CancellationToken) *Coordinator {
	buffer := cfg.BatchBuffer
	if buffer <= 0 {
		buffer = defaultBatchBuffer
	}
	return &Coordinator{
		pattern: pattern,
		cfg:     cfg,
		token:   token,
		batches: make(chan []*Match, buffer),
		done:    make(chan Completion, 1),
	}
}

// Batches is the stream of per-file match batches. It is closed when the run
// ends, after which Done carries the completion kind.
func (c *Coordinator) Batches() <-chan []*Match {
	return c.batches
}

// Done signals how the run ended, distinguishing natural exhaustion of the
// walk from cancellation.
func (c *Coordinator) Done() <-chan Completion {
	return c.done
}

// Start launches the run in the background. The consumer drains Batches and
// then receives from Done.
func (c *Coordinator) Start(ctx context.Context) {
	go func() {
		completion := c.run(ctx)
		close(c.batches)
		c.done <- completion
	}()
}

// run walks the tree and searches every visited file. The walker fans visits
// across its pool; searchFile sends at most one batch per file.
func (c *Coordinator) run(ctx context.Context) Completion {
	if c.pattern.IsEmpty() {
		return CompletionFinished
	}

	w := walker.New(c.cfg.Walk)
	err := w.Walk(ctx, func(ctx context.Context, path string) error {
		if c.cancelled(ctx) {
			return nil
		}
		c.searchFile(ctx, path)
		return nil
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("walking search root")
	}

	if c.cancelled(ctx) {
		return CompletionCancelled
	}
	return CompletionFinished
}

// searchFile reads one file line by line and emits a batch when it matched.
// I/O errors are contained to the file; decode errors are tolerated up to
// maxDecodeErrors before the rest of the file is skipped, keeping whatever
// matched before the threshold.
func (c *Coordinator) searchFile(ctx context.Context, path string) {
	// The walker already filtered binaries; probing again here keeps the
	// result set clean when a caller bypasses the walker.
	if walker.LooksBinary(path) {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("opening file")
		return
	}
	defer f.Close()

	var batch []*Match
	reader := NewLineReader(f)
	lineNumber := 0
	decodeErrors := 0

	for {
		line, ending, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("reading file")
			return
		}
		lineNumber++

		if !utf8.ValidString(line) {
			decodeErrors++
			if decodeErrors >= maxDecodeErrors {
				zerolog.Ctx(ctx).Warn().
					Str("file", path).
					Int("line", lineNumber).
					Msg("too many undecodable lines, abandoning rest of file")
				break
			}
			continue
		}

		replacement, ok := c.pattern.Apply(line, c.cfg.Replacement)
		if !ok {
			continue
		}
		batch = append(batch, &Match{
			Path:         path,
			LineNumber:   lineNumber,
			OriginalLine: line,
			Ending:       ending,
			Replacement:  replacement,
			Included:     true,
		})
	}

	if len(batch) == 0 || c.cancelled(ctx) {
		return
	}
	select {
	case c.batches <- batch:
	case <-ctx.Done():
	}
}

// cancelled folds the token and the context into one check.
func (c *Coordinator) cancelled(ctx context.Context) bool {
	return c.token.Cancelled() || ctx.Err() != nil
}
