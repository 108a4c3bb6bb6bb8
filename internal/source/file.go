package source

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/safety"
)

// File is the sequential, non-mmap regular-file source. Lines are
// preserved exactly as read (empty lines included); a trailing \r is
// stripped, matching the universal "\n terminated, optional \r tolerated"
// wire contract.
type File struct {
	path      string
	f         *os.File
	sc        fileScanner
	sizeBytes int64
	maxLine   int
	closed    bool
}

// fileScanner is satisfied by *bufio.Scanner; narrowed to ease testing.
type fileScanner interface {
	Scan() bool
	Text() string
	Err() error
}

// DiagWarn receives the symlink diagnostic (safety.CheckSymlink) emitted
// when a source path resolves through a symbolic link. Callers that want
// this surfaced (the CLI wires this to applog) replace it; the default is
// silent.
var DiagWarn func(string) = func(string) {}

// NewFile opens path for sequential line reading. It fails with
// errs.ErrNotFound (wrapped) if the path does not exist. Files whose name
// ends in .gz, or whose first two bytes are the gzip magic, are
// transparently decompressed. A path resolving through a symbolic link is
// reported via DiagWarn but otherwise read normally.
func NewFile(path string) (*File, error) {
	return newFileWithMax(path, DefaultMaxLineBytes)
}

func newFileWithMax(path string, maxLine int) (*File, error) {
	safety.CheckSymlink(path, DiagWarn)
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	rdr, err := maybeGunzip(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	sc := newBufioScanner(rdr)
	return &File{path: path, f: f, sc: sc, sizeBytes: fi.Size(), maxLine: maxLine}, nil
}

// Next implements Source. Line-length validation (safety.CheckLineLength)
// runs here so oversize input fails fast rather than growing an unbounded
// buffer.
func (fs *File) Next() (string, bool, error) {
	if !fs.sc.Scan() {
		if err := fs.sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return "", false, errs.NewValidationError(errs.LineLength,
					fmt.Sprintf("line length exceeds max %d", fs.maxLine),
					map[string]any{"max": fs.maxLine})
			}
			return "", false, err
		}
		return "", false, nil
	}
	line := stripCR(fs.sc.Text())
	if err := safety.CheckLineLength(line, fs.maxLine); err != nil {
		return "", false, err
	}
	return line, true, nil
}

// Metadata implements Source.
func (fs *File) Metadata() map[string]any {
	return map[string]any{
		"source_type": "file",
		"path":        fs.path,
		"name":        baseName(fs.path),
		"size_bytes":  fs.sizeBytes,
		"size_mb":     float64(fs.sizeBytes) / (1024 * 1024),
	}
}

// Close implements Source.
func (fs *File) Close() error {
	if fs.closed {
		return nil
	}
	fs.closed = true
	return fs.f.Close()
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
