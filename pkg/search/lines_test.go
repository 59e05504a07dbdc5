package search

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader(t *testing.T) {
	type line struct {
		text   string
		ending LineEnding
	}

	tests := []struct {
		name  string
		input string
		want  []line
	}{
		{
			name:  "lf_lines",
			input: "one\ntwo\n",
			want: []line{
				{"one", EndingLF},
				{"two", EndingLF},
			},
		},
		{
			name:  "crlf_lines",
			input: "one\r\ntwo\r\n",
			want: []line{
				{"one", EndingCRLF},
				{"two", EndingCRLF},
			},
		},
		{
			name:  "mixed_endings",
			input: "unix\nwindows\r\nunix\n",
			want: []line{
				{"unix", EndingLF},
				{"windows", EndingCRLF},
				{"unix", EndingLF},
			},
		},
		{
			name:  "missing_final_newline",
			input: "one\nlast",
			want: []line{
				{"one", EndingLF},
				{"last", EndingNone},
			},
		},
		{
			name:  "empty_lines_preserved",
			input: "\n\nx\n",
			want: []line{
				{"", EndingLF},
				{"", EndingLF},
				{"x", EndingLF},
			},
		},
		{
			name:  "lone_carriage_return_stays_in_line",
			input: "a\rb\n",
			want: []line{
				{"a\rb", EndingLF},
			},
		},
		{
			name:  "empty_input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewLineReader(strings.NewReader(tt.input))

			var got []line
			for {
				text, ending, err := reader.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				got = append(got, line{text, ending})
			}
			assert.Equal(t, tt.want, got)

			// Reassembling from lines and terminators reproduces the
			// input byte for byte.
			var sb strings.Builder
			for _, l := range got {
				sb.WriteString(l.text)
				sb.WriteString(l.ending.Terminator())
			}
			assert.Equal(t, tt.input, sb.String())
		})
	}
}

func TestLineEndingTerminator(t *testing.T) {
	assert.Equal(t, "\n", EndingLF.Terminator())
	assert.Equal(t, "\r\n", EndingCRLF.Terminator())
	assert.Equal(t, "", EndingNone.Terminator())
}
