package search

import (
	"bufio"
	"io"
	"strings"
)

// LineReader yields lines with their terminator style preserved, which is
// what lets a later rewrite reproduce LF, CRLF, and missing-final-newline
// files exactly. It never merges or splits lines on decode problems; content
// bytes pass through untouched.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r for line-by-line reading.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line without its terminator, plus which terminator
// it had. It returns io.EOF after the last line.
func (lr *LineReader) Next() (string, LineEnding, error) {
	chunk, err := lr.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", EndingNone, err
	}
	if chunk == "" {
		return "", EndingNone, io.EOF
	}

	if strings.HasSuffix(chunk, "\n") {
		if strings.HasSuffix(chunk, "\r\n") {
			return chunk[:len(chunk)-2], EndingCRLF, nil
		}
		return chunk[:len(chunk)-1], EndingLF, nil
	}
	// err == io.EOF here: final line with no trailing newline.
	return chunk, EndingNone, nil
}
