package source

// ProgressFunc receives a running tally as a wrapped source is consumed.
// totalBytes is the wrapped source's size when it reports one (a file),
// zero otherwise (stdin).
type ProgressFunc func(bytesRead, totalBytes, linesRead int64)

const defaultProgressInterval = 10000

// Chunked wraps another Source, tracking cumulative lines and bytes
// consumed and invoking a ProgressFunc every progressInterval lines plus
// once more at end-of-stream, so a long-running ingest can report status
// without the underlying source knowing about progress reporting at all.
type Chunked struct {
	inner            Source
	onProgress       ProgressFunc
	progressInterval int64
	totalBytes       int64

	lines int64
	bytes int64
	done  bool
}

// NewChunked wraps inner with progress reporting every interval lines (0
// or negative uses the default of 10,000).
func NewChunked(inner Source, onProgress ProgressFunc, interval int64) *Chunked {
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	c := &Chunked{inner: inner, onProgress: onProgress, progressInterval: interval}
	if sz, ok := inner.Metadata()["size_bytes"].(int64); ok {
		c.totalBytes = sz
	}
	return c
}

// Next implements Source, delegating to inner and updating the tally.
func (c *Chunked) Next() (string, bool, error) {
	line, ok, err := c.inner.Next()
	if err != nil {
		return "", false, err
	}
	if !ok {
		if !c.done {
			c.done = true
			c.report()
		}
		return "", false, nil
	}
	c.lines++
	c.bytes += int64(len(line)) + 1 // count the consumed terminator too
	if c.onProgress != nil && c.lines%c.progressInterval == 0 {
		c.report()
	}
	return line, true, nil
}

func (c *Chunked) report() {
	if c.onProgress != nil {
		c.onProgress(c.bytes, c.totalBytes, c.lines)
	}
}

// Metadata implements Source, adding the running tally to inner's metadata.
func (c *Chunked) Metadata() map[string]any {
	m := c.inner.Metadata()
	m["lines_read"] = c.lines
	m["bytes_read"] = c.bytes
	return m
}

// Close implements Source.
func (c *Chunked) Close() error {
	return c.inner.Close()
}
