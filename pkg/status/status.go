// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/retext/pkg/search"
)

// ReasonMissingResult is recorded for records that finished a replace run
// with no outcome. Correct operation never produces it; it is a defensive
// invariant check.
const ReasonMissingResult = "failed to find result in file"

// 📊 Summary reduces a replace run into the counts a results screen or batch
// summary needs.
type Summary struct {
	Successes int             // Records rewritten successfully
	Ignored   int             // Records the caller excluded before the run
	Errors    []*search.Match // Records that failed, with reasons attached
}

// ErrorCount returns the number of failed records.
func (s Summary) ErrorCount() int {
	return len(s.Errors)
}

// 🧮 Summarize folds per-record outcomes into a Summary. The ignored count is
// supplied by the caller because excluded records never reach the replace
// run. A record that still has no outcome is counted as an error with
// ReasonMissingResult.
func Summarize(records []*search.Match, ignored int) Summary {
	summary := Summary{Ignored: ignored}
	for _, rec := range records {
		switch {
		case rec.Outcome == nil:
			rec.Outcome = search.ErrorOutcome(ReasonMissingResult)
			summary.Errors = append(summary.Errors, rec)
		case rec.Outcome.Success:
			summary.Successes++
		default:
			summary.Errors = append(summary.Errors, rec)
		}
	}
	return summary
}

// 📈 Tracker reports run progress. Safe for use from the worker pool.
type Tracker struct {
	mu        sync.Mutex
	total     int
	processed int
}

// 🏭 NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// StartOperation resets the tracker for a run over total units of work.
func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg("operation started")
}

// Advance records one completed unit of work.
func (t *Tracker) Advance(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	zerolog.Ctx(ctx).Debug().
		Int("processed", t.processed).
		Int("total", t.total).
		Msg("operation progress")
}

// Progress returns the current processed/total pair.
func (t *Tracker) Progress() (processed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed, t.total
}
