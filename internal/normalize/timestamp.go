package normalize

import (
	"time"

	"github.com/loglens/loglens/internal/record"
)

// TimestampStep interprets a naive (no zone offset) timestamp as UTC and
// converts an already-zoned timestamp to TargetZone. A nil Timestamp is
// left untouched; normalization has no time to act on.
type TimestampStep struct {
	TargetZone *time.Location
}

// NewTimestampStep builds a TimestampStep targeting zone. A nil zone
// defaults to UTC.
func NewTimestampStep(zone *time.Location) *TimestampStep {
	if zone == nil {
		zone = time.UTC
	}
	return &TimestampStep{TargetZone: zone}
}

func (s *TimestampStep) Normalize(r record.Record) (record.Record, error) {
	if r.Timestamp == nil {
		return r, nil
	}
	ts := *r.Timestamp
	if isNaive(ts) {
		ts = time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC)
	}
	converted := ts.In(s.TargetZone)
	r.Timestamp = &converted
	return r, nil
}

// isNaive reports whether t's location carries no real offset information,
// i.e. it is time.UTC or time.Local with a zero offset name such as the
// zero value's "UTC". Most parsers in this module already produce UTC
// times for naive input, so this mainly guards against a future parser
// attaching time.Local to a timestamp string that had no zone of its own.
func isNaive(t time.Time) bool {
	name, offset := t.Zone()
	return offset == 0 && (name == "UTC" || name == "")
}
