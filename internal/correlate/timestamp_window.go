package correlate

import (
	"time"

	"github.com/loglens/loglens/internal/record"
)

// DefaultWindowSeconds is the default sliding-window width.
const DefaultWindowSeconds = 1.0

// DefaultMinGroupSize is the minimum member count for an emitted window
// group.
const DefaultMinGroupSize = 2

// TimestampWindowStrategy groups records whose timestamps fall within
// WindowSeconds of the window's first-seen timestamp. Streaming-capable:
// assumes input is already roughly timestamp-ordered, as guaranteed when
// fed from Merge.
type TimestampWindowStrategy struct {
	WindowSeconds          float64
	MinGroupSize           int
	RequireMultipleSources bool
}

func NewTimestampWindowStrategy() *TimestampWindowStrategy {
	return &TimestampWindowStrategy{
		WindowSeconds: DefaultWindowSeconds,
		MinGroupSize:  DefaultMinGroupSize,
	}
}

func (s *TimestampWindowStrategy) Name() string { return "timestamp_window" }

func (s *TimestampWindowStrategy) SupportsStreaming() bool { return true }

func (s *TimestampWindowStrategy) Correlate(records []record.Record, bufferSize int) Result {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	minSize := s.MinGroupSize
	if minSize <= 0 {
		minSize = DefaultMinGroupSize
	}
	width := time.Duration(s.WindowSeconds * float64(time.Second))

	var groups []Group
	var orphans []record.Record
	var current []record.Record
	var windowStart *time.Time

	emit := func() {
		if windowStart == nil {
			current = nil
			return
		}
		if len(current) >= minSize && (!s.RequireMultipleSources || distinctSourceCount(current) >= 2) {
			key := windowStart.UTC().Format(time.RFC3339Nano)
			groups = append(groups, NewGroup("window:"+key, key, s.Name(), current))
		} else {
			orphans = append(orphans, current...)
		}
		current = nil
		windowStart = nil
	}

	for _, r := range records {
		if r.Timestamp == nil {
			orphans = append(orphans, r)
			continue
		}
		if windowStart == nil {
			t := *r.Timestamp
			windowStart = &t
			current = append(current, r)
			continue
		}
		if r.Timestamp.Sub(*windowStart) <= width {
			current = append(current, r)
		} else {
			emit()
			t := *r.Timestamp
			windowStart = &t
			current = append(current, r)
		}
		if len(current) >= bufferSize {
			emit()
		}
	}
	emit()

	return NewResult(groups, orphans)
}

func distinctSourceCount(records []record.Record) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if id := sourceIdentifier(r); id != "" {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}
