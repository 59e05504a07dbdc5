package status

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/retext/pkg/search"
)

func TestFormatRecord(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		rec  *search.Match
		want []string
	}{
		{
			name: "successful_record",
			rec: &search.Match{
				Path:       "/tmp/a.txt",
				LineNumber: 3,
				Outcome:    search.SuccessOutcome(),
			},
			want: []string{"✓", "/tmp/a.txt:3"},
		},
		{
			name: "failed_record_carries_reason",
			rec: &search.Match{
				Path:       "/tmp/a.txt",
				LineNumber: 7,
				Outcome:    search.ErrorOutcome("File changed since last search"),
			},
			want: []string{"✗", "/tmp/a.txt:7", "File changed since last search"},
		},
		{
			name: "pending_record",
			rec: &search.Match{
				Path:       "/tmp/a.txt",
				LineNumber: 1,
			},
			want: []string{"-", "/tmp/a.txt:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRecord(tt.rec)
			for _, fragment := range tt.want {
				assert.Contains(t, got, fragment)
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	color.NoColor = true

	summary := Summary{
		Successes: 4,
		Ignored:   2,
		Errors:    []*search.Match{{}, {}},
	}
	got := FormatSummary(summary)
	assert.Contains(t, got, "4 replaced")
	assert.Contains(t, got, "2 ignored")
	assert.Contains(t, got, "2 errors")
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "⏳ Progress: 1/4 (25%)", FormatProgress(1, 4))
	assert.Equal(t, "✅ Progress: 4/4 (100%)", FormatProgress(4, 4))
	assert.Equal(t, "✅ Progress: 0/0 (0%)", FormatProgress(0, 0))
}
