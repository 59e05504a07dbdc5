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

package status_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retext/pkg/search"
	"github.com/walteh/retext/pkg/status"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		records       []*search.Match
		ignored       int
		wantSuccesses int
		wantErrors    int
	}{
		{
			name: "all_successful",
			records: []*search.Match{
				{Path: "a.txt", LineNumber: 1, Outcome: search.SuccessOutcome()},
				{Path: "a.txt", LineNumber: 2, Outcome: search.SuccessOutcome()},
			},
			wantSuccesses: 2,
		},
		{
			name: "mixed_outcomes",
			records: []*search.Match{
				{Path: "a.txt", LineNumber: 1, Outcome: search.SuccessOutcome()},
				{Path: "a.txt", LineNumber: 2, Outcome: search.ErrorOutcome("boom")},
			},
			ignored:       3,
			wantSuccesses: 1,
			wantErrors:    1,
		},
		{
			name:    "empty_run",
			ignored: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := status.Summarize(tt.records, tt.ignored)
			assert.Equal(t, tt.wantSuccesses, summary.Successes)
			assert.Equal(t, tt.ignored, summary.Ignored)
			assert.Equal(t, tt.wantErrors, summary.ErrorCount())
		})
	}
}

func TestSummarize_MissingOutcome(t *testing.T) {
	rec := &search.Match{Path: "a.txt", LineNumber: 1}

	summary := status.Summarize([]*search.Match{rec}, 0)

	// A record nothing touched gets a defensive error outcome.
	require.Equal(t, 1, summary.ErrorCount())
	require.NotNil(t, rec.Outcome)
	assert.False(t, rec.Outcome.Success)
	assert.Equal(t, status.ReasonMissingResult, rec.Outcome.Reason)
}

func TestTracker(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	tracker := status.NewTracker()
	tracker.StartOperation(ctx, 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Advance(ctx)
		}()
	}
	wg.Wait()

	processed, total := tracker.Progress()
	assert.Equal(t, 10, processed)
	assert.Equal(t, 10, total)

	// Starting again resets the counters.
	tracker.StartOperation(ctx, 3)
	processed, total = tracker.Progress()
	assert.Equal(t, 0, processed)
	assert.Equal(t, 3, total)
}
