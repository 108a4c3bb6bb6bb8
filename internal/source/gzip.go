package source

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte marker at the start of a gzip stream.
var gzipMagic = [2]byte{0x1f, 0x8b}

// maybeGunzip sniffs f for a .gz name or the gzip magic bytes and, if
// found, returns a reader that transparently decompresses; otherwise it
// returns f unchanged with its read offset rewound to the start.
func maybeGunzip(f *os.File, path string) (io.Reader, error) {
	if strings.HasSuffix(path, ".gz") {
		return gzip.NewReader(f)
	}
	var head [2]byte
	n, err := io.ReadFull(f, head[:])
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		return nil, seekErr
	}
	if err != nil || n < 2 || head != gzipMagic {
		return f, nil
	}
	return gzip.NewReader(f)
}
