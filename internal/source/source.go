// Package source implements the uniform line-source contract: regular
// file, memory-mapped large file, chunked file with progress, streaming
// stdin, and peek-buffered stdin. Every source is a pull-based iterator so
// a consumer controls pacing and can abandon it early without the source
// holding any buffer beyond its documented bound.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/safety"
)

// LargeFileThreshold is the file size above which Large switches to a
// memory-mapped read path.
const LargeFileThreshold = 100 * 1024 * 1024

// DefaultMaxLineBytes bounds any single line read by a Source.
const DefaultMaxLineBytes = safety.DefaultMaxLineBytes

// Source is the uniform contract every line producer satisfies.
type Source interface {
	// Next pulls the next line (without trailing \n or \r). ok is false
	// only at clean end-of-stream; err is set on a read or validation
	// failure.
	Next() (line string, ok bool, err error)
	// Metadata describes this source: at minimum source_type and the
	// fields documented per concrete source kind.
	Metadata() map[string]any
	// Close releases any file handles, memory maps, or pipes. Safe to
	// call multiple times and safe to call before exhaustion.
	Close() error
}

// newBufioScanner builds a bufio.Scanner configured with a buffer large
// enough for DefaultMaxLineBytes; the per-line length validation is still
// performed explicitly by the caller so the failure carries the documented
// kind instead of bufio's generic ErrTooLong.
func newBufioScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), DefaultMaxLineBytes+1)
	return sc
}

func stripCR(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}

// openFile opens path, translating a missing file into errs.ErrNotFound as
// required at source-construction boundaries.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}
		return nil, errs.NewIOFailure(path, err)
	}
	return f, nil
}
