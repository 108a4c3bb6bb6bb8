package source

import (
	"bytes"
	"os"

	"github.com/loglens/loglens/internal/safety"
	"golang.org/x/sys/unix"
)

// Large is a file source that switches to a read-only memory map once the
// file exceeds LargeFileThreshold, scanning the mapped bytes for '\n'
// directly instead of paying for a buffered-reader copy per line. Below
// the threshold it falls back to the regular sequential path.
type Large struct {
	path      string
	f         *os.File
	sizeBytes int64
	usingMmap bool

	data   []byte // mmap'd region, nil when not using mmap
	offset int    // current scan offset within data
	closed bool

	fallback *File // used when below the threshold
}

// NewLarge opens path, stats it, and picks the mmap path when its size
// exceeds LargeFileThreshold.
func NewLarge(path string) (*Large, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	sz := fi.Size()
	if sz <= LargeFileThreshold {
		f.Close()
		fb, err := NewFile(path) // NewFile performs the symlink check
		if err != nil {
			return nil, err
		}
		return &Large{path: path, sizeBytes: sz, fallback: fb}, nil
	}
	safety.CheckSymlink(path, DiagWarn)

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	return &Large{path: path, f: f, sizeBytes: sz, usingMmap: true, data: data}, nil
}

// Next implements Source. When mapped, it scans the mapped region for the
// next '\n', decoding each line with UTF-8 replacement and handling a
// trailing partial line at end-of-file.
func (l *Large) Next() (string, bool, error) {
	if l.fallback != nil {
		return l.fallback.Next()
	}
	if l.offset >= len(l.data) {
		return "", false, nil
	}
	rest := l.data[l.offset:]
	idx := bytes.IndexByte(rest, '\n')
	var raw []byte
	if idx < 0 {
		raw = rest
		l.offset = len(l.data)
	} else {
		raw = rest[:idx]
		l.offset += idx + 1
	}
	line := stripCR(decodeUTF8Replacing(raw))
	if err := safety.CheckLineLength(line, DefaultMaxLineBytes); err != nil {
		return "", false, err
	}
	return line, true, nil
}

// Metadata implements Source.
func (l *Large) Metadata() map[string]any {
	if l.fallback != nil {
		m := l.fallback.Metadata()
		m["using_mmap"] = false
		m["size_gb"] = float64(l.sizeBytes) / (1024 * 1024 * 1024)
		return m
	}
	return map[string]any{
		"source_type": "file",
		"path":        l.path,
		"name":        baseName(l.path),
		"size_bytes":  l.sizeBytes,
		"size_mb":     float64(l.sizeBytes) / (1024 * 1024),
		"size_gb":     float64(l.sizeBytes) / (1024 * 1024 * 1024),
		"using_mmap":  true,
	}
}

// Close implements Source, unmapping the region (or delegating to the
// sequential fallback) exactly once.
func (l *Large) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.fallback != nil {
		return l.fallback.Close()
	}
	var err error
	if l.data != nil {
		err = unix.Munmap(l.data)
		l.data = nil
	}
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func decodeUTF8Replacing(b []byte) string {
	return string(bytes.ToValidUTF8(b, []byte("�")))
}
