package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loglens/loglens/internal/record"
)

// orderedFormats lists every explicit timestamp layout recognized across
// parsers, tried in order.
var orderedFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05,999",
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
	"02/Jan/2006:15:04:05 -0700",
	"Jan 2 15:04:05",
	"Jan _2 15:04:05",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05.999",
	"01/02/2006 15:04:05",
}

// mostRecentFormat is the index into orderedFormats that last matched,
// tried first on the next call; the common case is a single dominant
// format per process.
var mostRecentFormat int

var (
	unixSecondsRE = regexp.MustCompile(`^\d{10}$`)
	unixMilliRE   = regexp.MustCompile(`^\d{13}$`)
)

// ParseTimestamp tries unix epoch forms, then the ordered explicit layout
// list (most-recently-successful first), then a loose fuzzy fallback. It
// returns ok=false when nothing matches.
func ParseTimestamp(s string) (t time.Time, precision record.Precision, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, record.PrecisionSecond, false
	}

	if unixMilliRE.MatchString(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return time.UnixMilli(ms).UTC(), record.PrecisionMilli, true
		}
	}
	if unixSecondsRE.MatchString(s) {
		sec, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return time.Unix(sec, 0).UTC(), record.PrecisionSecond, true
		}
	}

	if mostRecentFormat < len(orderedFormats) {
		if parsed, err := time.Parse(orderedFormats[mostRecentFormat], s); err == nil {
			return parsed, precisionFor(s), true
		}
	}
	for i, layout := range orderedFormats {
		if i == mostRecentFormat {
			continue
		}
		if parsed, err := time.Parse(layout, s); err == nil {
			mostRecentFormat = i
			return parsed, precisionFor(s), true
		}
	}

	if parsed, ok := fuzzyParse(s); ok {
		return parsed, record.PrecisionSecond, true
	}
	return time.Time{}, record.PrecisionSecond, false
}

// precisionFor counts the fractional-seconds digits in s: >=9 digits ->
// ns, >=6 -> us, >=3 -> ms, anything else -> whole seconds.
func precisionFor(s string) record.Precision {
	dot := strings.IndexAny(s, ".,")
	if dot < 0 {
		return record.PrecisionSecond
	}
	frac := s[dot+1:]
	n := 0
	for n < len(frac) && frac[n] >= '0' && frac[n] <= '9' {
		n++
	}
	switch {
	case n >= 9:
		return record.PrecisionNano
	case n >= 6:
		return record.PrecisionMicro
	case n >= 3:
		return record.PrecisionMilli
	default:
		return record.PrecisionSecond
	}
}

var fuzzyLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
	"2006-01-02",
	"01-02-2006",
}

func fuzzyParse(s string) (time.Time, bool) {
	for _, layout := range fuzzyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReconstructYear fills in the year for timestamps (BSD syslog, klog) that
// omit it, using the rule: assume the current year, then roll back one
// year if that would place the timestamp more than a day in the future
// relative to now. That threshold absorbs clock skew between the log
// source and this process without misdating every log line emitted in the
// final hours of December.
func ReconstructYear(t time.Time, now time.Time) time.Time {
	candidate := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if candidate.After(now.Add(24 * time.Hour)) {
		candidate = time.Date(now.Year()-1, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return candidate
}
