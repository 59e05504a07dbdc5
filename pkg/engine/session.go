// Package engine orchestrates one find-and-replace session: compile the
// pattern, stream the search, let the consumer curate the match set, run the
// replace pass, and summarize. Both the batch CLI and an interactive
// front-end drive the same Session; the engine itself never renders anything.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/retext/pkg/matcher"
	"github.com/walteh/retext/pkg/replace"
	"github.com/walteh/retext/pkg/search"
	"github.com/walteh/retext/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// State is the session lifecycle position.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateSearchComplete
	StateReplacing
	StateDone
	StateCancelled
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateSearchComplete:
		return "search-complete"
	case StateReplacing:
		return "replacing"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session owns one search/replace cycle. Matches collected by a search are
// discarded on Reset; they are never reused across runs.
type Session struct {
	mu      sync.Mutex
	state   State
	pattern *matcher.Pattern
	cfg     search.Config
	token   *search.CancellationToken
	matches []*search.Match
}

// NewSession creates an idle session for one compiled pattern.
func NewSession(pattern *matcher.Pattern, cfg search.Config) *Session {
	return &Session{
		pattern: pattern,
		cfg:     cfg,
		token:   search.NewCancellationToken(),
	}
}

// State reports the current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token exposes the cancellation flag so a front-end can cancel from its own
// event loop.
func (s *Session) Token() *search.CancellationToken {
	return s.token
}

// Cancel requests cooperative cancellation of whatever is running.
func (s *Session) Cancel() {
	s.token.Cancel()
}

// StartSearch begins streaming. The consumer drains the coordinator's
// Batches channel and then calls FinishSearch with everything it kept.
func (s *Session) StartSearch(ctx context.Context) (*search.Coordinator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil, errors.Errorf("cannot start search from state %s", s.state)
	}
	s.state = StateSearching

	coord := search.NewCoordinator(s.pattern, s.cfg, s.token)
	coord.Start(ctx)
	return coord, nil
}

// FinishSearch records the collected matches and the completion kind.
func (s *Session) FinishSearch(matches []*search.Match, completion search.Completion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = matches
	if completion == search.CompletionCancelled {
		s.state = StateCancelled
		return
	}
	s.state = StateSearchComplete
}

// Search runs a whole search synchronously, collecting every batch in
// discovery order. Convenience for headless callers.
func (s *Session) Search(ctx context.Context) ([]*search.Match, search.Completion, error) {
	coord, err := s.StartSearch(ctx)
	if err != nil {
		return nil, 0, err
	}

	var matches []*search.Match
	for batch := range coord.Batches() {
		matches = append(matches, batch...)
	}
	completion := <-coord.Done()

	s.FinishSearch(matches, completion)
	zerolog.Ctx(ctx).Debug().
		Int("matches", len(matches)).
		Str("completion", completion.String()).
		Msg("search finished")
	return matches, completion, nil
}

// Matches returns the collected match set for curation. The caller may
// toggle Included on the records but must stop before calling Replace.
func (s *Session) Matches() []*search.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches
}

// Replace freezes the included set and rewrites the files. Records the
// consumer excluded are counted as ignored and never reach the coordinator.
func (s *Session) Replace(ctx context.Context, opts replace.Options) (status.Summary, error) {
	s.mu.Lock()
	if s.state != StateSearchComplete {
		state := s.state
		s.mu.Unlock()
		return status.Summary{}, errors.Errorf("cannot replace from state %s", state)
	}
	s.state = StateReplacing

	var included []*search.Match
	ignored := 0
	for _, rec := range s.matches {
		if rec.Included {
			included = append(included, rec)
		} else {
			ignored++
		}
	}
	s.mu.Unlock()

	replace.Run(ctx, included, s.token, opts)
	summary := status.Summarize(included, ignored)

	s.mu.Lock()
	s.state = StateDone
	s.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("successes", summary.Successes).
		Int("ignored", summary.Ignored).
		Int("errors", summary.ErrorCount()).
		Msg("replace finished")
	return summary, nil
}

// Reset discards the match set and returns the session to idle with a fresh
// cancellation token, ready for a new search.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = nil
	s.token = search.NewCancellationToken()
	s.state = StateIdle
}
