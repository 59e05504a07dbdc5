package search

// LineEnding records the terminator style of one line as it was read, so a
// replace pass can reproduce the file byte for byte.
type LineEnding int

const (
	EndingNone LineEnding = iota // last line without a trailing newline
	EndingLF
	EndingCRLF
)

// Terminator returns the bytes to re-append when writing the line back.
func (e LineEnding) Terminator() string {
	switch e {
	case EndingLF:
		return "\n"
	case EndingCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// Outcome is the result of replacing one match. Success carries no reason;
// failures carry a human-readable one.
type Outcome struct {
	Success bool
	Reason  string
}

// SuccessOutcome returns the shared success value.
func SuccessOutcome() *Outcome {
	return &Outcome{Success: true}
}

// ErrorOutcome returns a failed outcome with the given reason.
func ErrorOutcome(reason string) *Outcome {
	return &Outcome{Reason: reason}
}

// Match is one discovered match. A search run creates it, the consumer may
// toggle Included, and a replace run sets Outcome. Ownership moves through
// those stages in sequence; a Match is never mutated from two goroutines.
type Match struct {
	Path         string     // Absolute file path
	LineNumber   int        // 1-indexed
	OriginalLine string     // Line content as read, terminator stripped
	Ending       LineEnding // Terminator style of the original line
	Replacement  string     // Fully substituted line
	Included     bool       // Consumer-controlled; replace skips false
	Outcome      *Outcome   // nil until a replace run processes the match
}
