package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/safety"
)

// Stdin streams lines one at a time from an underlying reader (os.Stdin in
// production; tests supply any io.Reader) with no buffering beyond a
// single bufio.Scanner line.
type Stdin struct {
	sc      *bufio.Scanner
	maxLine int
	closed  bool

	lines int64
	bytes int64
}

// NewStdin wraps r (typically os.Stdin) for line-at-a-time reading. Close
// is a no-op: process-standard-input lifetime is owned by the process, not
// by this source.
func NewStdin(r io.Reader) *Stdin {
	return &Stdin{sc: newBufioScanner(r), maxLine: DefaultMaxLineBytes}
}

// Next implements Source.
func (s *Stdin) Next() (string, bool, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return "", false, errs.NewValidationError(errs.LineLength,
					fmt.Sprintf("line length exceeds max %d", s.maxLine),
					map[string]any{"max": s.maxLine})
			}
			return "", false, err
		}
		return "", false, nil
	}
	line := stripCR(s.sc.Text())
	if err := safety.CheckLineLength(line, s.maxLine); err != nil {
		return "", false, err
	}
	s.lines++
	s.bytes += int64(len(line)) + 1
	return line, true, nil
}

// Metadata implements Source, reporting the running consumption totals.
func (s *Stdin) Metadata() map[string]any {
	return map[string]any{
		"source_type": "stdin",
		"lines_read":  s.lines,
		"bytes_read":  s.bytes,
	}
}

// Close implements Source.
func (s *Stdin) Close() error {
	s.closed = true
	return nil
}
