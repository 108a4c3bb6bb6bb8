package source

import "io"

// PeekLineCount is the number of leading lines PeekStdin buffers for
// upfront format detection before a consumer starts pulling the live
// stream.
const PeekLineCount = 50

// PeekStdin wraps Stdin with a one-shot Peek() that reads and retains up
// to PeekLineCount lines without consuming them from the stream: Next()
// still yields every line, buffered ones first, followed by the live tail.
// Peek itself is idempotent in the sense that calling it more than once
// returns the same buffered slice rather than reading further ahead, but
// it only ever fills the buffer once.
type PeekStdin struct {
	inner  *Stdin
	buf    []string
	bufPos int
	peeked bool
}

// NewPeekStdin wraps r for peekable line-at-a-time reading.
func NewPeekStdin(r io.Reader) *PeekStdin {
	return &PeekStdin{inner: NewStdin(r)}
}

// Peek reads up to PeekLineCount lines from the underlying stream into an
// internal buffer and returns them, without affecting what Next() will
// later yield (Next drains the same buffer first). Calling Peek again
// after the first call returns the already-buffered lines unchanged.
func (p *PeekStdin) Peek() ([]string, error) {
	if p.peeked {
		return p.buf, nil
	}
	p.peeked = true
	for len(p.buf) < PeekLineCount {
		line, ok, err := p.inner.Next()
		if err != nil {
			return p.buf, err
		}
		if !ok {
			break
		}
		p.buf = append(p.buf, line)
	}
	return p.buf, nil
}

// Next implements Source, draining any buffered peeked lines before
// reading further from the live stream.
func (p *PeekStdin) Next() (string, bool, error) {
	if p.bufPos < len(p.buf) {
		line := p.buf[p.bufPos]
		p.bufPos++
		return line, true, nil
	}
	return p.inner.Next()
}

// Metadata implements Source.
func (p *PeekStdin) Metadata() map[string]any {
	return p.inner.Metadata()
}

// Close implements Source.
func (p *PeekStdin) Close() error {
	return p.inner.Close()
}
