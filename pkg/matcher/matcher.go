// Package matcher compiles user search input into a matchable pattern and
// applies it line-by-line. Three pattern kinds exist: fixed strings, standard
// regular expressions, and lookaround-capable regular expressions. Whole-word
// and case-insensitive searches always compile to the lookaround kind because
// the standard engine cannot express the boundary assertions they need.
package matcher

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// Kind discriminates the pattern variants.
type Kind int

const (
	KindFixed Kind = iota
	KindRegex
	KindLookaround
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindRegex:
		return "regex"
	case KindLookaround:
		return "lookaround"
	default:
		return "unknown"
	}
}

// Options control how raw search text is interpreted.
type Options struct {
	FixedStrings bool // Treat the text as a literal substring
	WholeWord    bool // Reject matches adjacent to [A-Za-z0-9_]
	MatchCase    bool // Case-sensitive matching
}

// Pattern is a compiled search pattern. Exactly one of the backing fields is
// set, selected by kind.
type Pattern struct {
	kind Kind
	raw  string

	fixed string          // KindFixed: the literal needle
	std   *regexp.Regexp  // KindRegex
	look  *regexp2.Regexp // KindLookaround

	// literalReplacement marks patterns built from fixed strings whose
	// replacement text must not be interpreted as a template.
	literalReplacement bool
}

// wordBoundaryBefore/After reject matches touching identifier characters.
const (
	wordBoundaryBefore = `(?<![a-zA-Z0-9_])`
	wordBoundaryAfter  = `(?![a-zA-Z0-9_])`
)

// Compile builds a Pattern from raw search text. An empty raw string compiles
// successfully and matches nothing. Invalid syntax for the selected mode
// returns an error suitable for inline validation.
func Compile(raw string, opts Options) (*Pattern, error) {
	// Whole-word and case-insensitive searches need lookaround assertions
	// and inline flags, so they are always normalized into the lookaround
	// engine, with fixed strings escaped first.
	if opts.WholeWord || !opts.MatchCase {
		body := raw
		literal := false
		if opts.FixedStrings {
			body = regexp.QuoteMeta(raw)
			literal = true
		}
		if !opts.MatchCase {
			body = "(?i)" + body
		}
		if opts.WholeWord {
			body = wordBoundaryBefore + "(?:" + body + ")" + wordBoundaryAfter
		}

		look, err := regexp2.Compile(body, regexp2.None)
		if err != nil {
			return nil, errors.Errorf("compiling pattern: %w", err)
		}
		return &Pattern{
			kind:               KindLookaround,
			raw:                raw,
			look:               look,
			literalReplacement: literal,
		}, nil
	}

	if opts.FixedStrings {
		return &Pattern{kind: KindFixed, raw: raw, fixed: raw}, nil
	}

	std, err := regexp.Compile(raw)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}
	return &Pattern{kind: KindRegex, raw: raw, std: std}, nil
}

// Kind reports which variant the pattern compiled to.
func (p *Pattern) Kind() Kind {
	return p.kind
}

// IsEmpty reports whether the pattern was built from empty search text.
// Empty patterns never match.
func (p *Pattern) IsEmpty() bool {
	return p.raw == ""
}

// Apply substitutes every match of the pattern in line with replacement and
// reports whether a match occurred. It returns ("", false) when the line is
// empty, the pattern is empty, or nothing matched. Regex kinds support
// capture-group back-references ($1) in the replacement.
func (p *Pattern) Apply(line, replacement string) (string, bool) {
	if line == "" || p.IsEmpty() {
		return "", false
	}

	switch p.kind {
	case KindFixed:
		if !strings.Contains(line, p.fixed) {
			return "", false
		}
		return strings.ReplaceAll(line, p.fixed, replacement), true

	case KindRegex:
		if !p.std.MatchString(line) {
			return "", false
		}
		return p.std.ReplaceAllString(line, replacement), true

	default:
		matched, err := p.look.MatchString(line)
		if err != nil || !matched {
			return "", false
		}
		tpl := replacement
		if p.literalReplacement {
			tpl = escapeTemplate(replacement)
		}
		result, err := p.look.Replace(line, tpl, -1, -1)
		if err != nil {
			return "", false
		}
		return result, true
	}
}

// escapeTemplate neutralizes $ so a fixed-string replacement stays literal
// after the pattern was normalized into a regex.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
