package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_KindSelection(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		opts Options
		want Kind
	}{
		{
			name: "fixed_string",
			raw:  "foo",
			opts: Options{FixedStrings: true, MatchCase: true},
			want: KindFixed,
		},
		{
			name: "standard_regex",
			raw:  `\d+`,
			opts: Options{MatchCase: true},
			want: KindRegex,
		},
		{
			name: "whole_word_forces_lookaround",
			raw:  "foo",
			opts: Options{WholeWord: true, MatchCase: true},
			want: KindLookaround,
		},
		{
			name: "case_insensitive_forces_lookaround",
			raw:  "foo",
			opts: Options{MatchCase: false},
			want: KindLookaround,
		},
		{
			name: "fixed_whole_word_forces_lookaround",
			raw:  "a.b",
			opts: Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			want: KindLookaround,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.raw, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Kind())
		})
	}
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile("(unclosed", Options{MatchCase: true})
	require.Error(t, err)

	_, err = Compile("(unclosed", Options{WholeWord: true, MatchCase: true})
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		opts        Options
		line        string
		replacement string
		want        string
		wantMatch   bool
	}{
		{
			name:        "fixed_replaces_all_occurrences",
			raw:         "foo",
			opts:        Options{FixedStrings: true, MatchCase: true},
			line:        "foo bar foo",
			replacement: "baz",
			want:        "baz bar baz",
			wantMatch:   true,
		},
		{
			name:        "fixed_no_match",
			raw:         "absent",
			opts:        Options{FixedStrings: true, MatchCase: true},
			line:        "foo bar foo",
			replacement: "baz",
			wantMatch:   false,
		},
		{
			name:        "fixed_preserves_surrounding_text",
			raw:         "bar",
			opts:        Options{FixedStrings: true, MatchCase: true},
			line:        "prefix bar suffix",
			replacement: "qux",
			want:        "prefix qux suffix",
			wantMatch:   true,
		},
		{
			name:        "regex_global_replace",
			raw:         `\d{3}`,
			opts:        Options{MatchCase: true},
			line:        "abc123def456",
			replacement: "X",
			want:        "abcXdefX",
			wantMatch:   true,
		},
		{
			name:        "regex_capture_group_backreference",
			raw:         `(\w+)@example\.com`,
			opts:        Options{MatchCase: true},
			line:        "mail bob@example.com now",
			replacement: "$1@example.org",
			want:        "mail bob@example.org now",
			wantMatch:   true,
		},
		{
			name:        "whole_word_matches_hyphenated",
			raw:         "world",
			opts:        Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:        "Hello-world!",
			replacement: "there",
			want:        "Hello-there!",
			wantMatch:   true,
		},
		{
			name:        "whole_word_matches_punctuated",
			raw:         "world",
			opts:        Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:        ",world-",
			replacement: "there",
			want:        ",there-",
			wantMatch:   true,
		},
		{
			name:      "whole_word_rejects_suffix",
			raw:       "world",
			opts:      Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:      "worldwide",
			wantMatch: false,
		},
		{
			name:      "whole_word_rejects_prefix",
			raw:       "world",
			opts:      Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:      "underworld",
			wantMatch: false,
		},
		{
			name:      "whole_word_rejects_underscore_neighbor",
			raw:       "world",
			opts:      Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:      "hello_world",
			wantMatch: false,
		},
		{
			name:        "case_insensitive_matches_any_case",
			raw:         "hello",
			opts:        Options{FixedStrings: true, MatchCase: false},
			line:        "HeLLo there",
			replacement: "goodbye",
			want:        "goodbye there",
			wantMatch:   true,
		},
		{
			name:      "case_sensitive_rejects_other_case",
			raw:       "hello",
			opts:      Options{FixedStrings: true, MatchCase: true},
			line:      "HeLLo there",
			wantMatch: false,
		},
		{
			name:        "case_insensitive_regex",
			raw:         "h.llo",
			opts:        Options{MatchCase: false},
			line:        "HELLO there",
			replacement: "bye",
			want:        "bye there",
			wantMatch:   true,
		},
		{
			name:        "fixed_dollar_replacement_stays_literal",
			raw:         "price",
			opts:        Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:        "the price is",
			replacement: "$100",
			want:        "the $100 is",
			wantMatch:   true,
		},
		{
			name:      "empty_pattern_never_matches",
			raw:       "",
			opts:      Options{FixedStrings: true, MatchCase: true},
			line:      "anything",
			wantMatch: false,
		},
		{
			name:      "empty_line_never_matches",
			raw:       ".*",
			opts:      Options{MatchCase: true},
			line:      "",
			wantMatch: false,
		},
		{
			name:        "fixed_metacharacters_are_literal",
			raw:         "a.b",
			opts:        Options{FixedStrings: true, WholeWord: true, MatchCase: true},
			line:        "x a.b axb",
			replacement: "c",
			want:        "x c axb",
			wantMatch:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.raw, tt.opts)
			require.NoError(t, err)

			got, matched := p.Apply(tt.line, tt.replacement)
			assert.Equal(t, tt.wantMatch, matched)
			if tt.wantMatch {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, "", got)
			}
		})
	}
}

func TestApply_WholeWordCaseInsensitiveComposition(t *testing.T) {
	p, err := Compile("world", Options{FixedStrings: true, WholeWord: true, MatchCase: false})
	require.NoError(t, err)

	got, matched := p.Apply("Hello WORLD!", "there")
	require.True(t, matched)
	assert.Equal(t, "Hello there!", got)

	_, matched = p.Apply("WORLDWIDE", "there")
	assert.False(t, matched)
}
