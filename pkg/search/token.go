package search

import "sync/atomic"

// CancellationToken is a shared one-way flag. The owner (typically a UI or
// signal handler) sets it; workers poll it at file and batch boundaries.
// It carries no other state and is safe for concurrent use.
type CancellationToken struct {
	cancelled atomic.Bool
}

// NewCancellationToken creates an unset token.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// Cancel sets the flag. Calling it more than once is harmless.
func (t *CancellationToken) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation was requested. A nil token never
// reports cancelled, so callers may pass nil when cancellation is not needed.
func (t *CancellationToken) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}
