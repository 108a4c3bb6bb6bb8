package parser

import (
	"testing"
	"time"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampVariants(t *testing.T) {
	cases := []struct {
		in        string
		precision record.Precision
	}{
		{"2023-05-01T12:00:00.123456789Z", record.PrecisionNano},
		{"2023-05-01T12:00:00Z", record.PrecisionSecond},
		{"2023-05-01 12:00:00.123456", record.PrecisionMicro},
		{"2023-05-01 12:00:00,123", record.PrecisionMilli},
		{"01/May/2023:12:00:00 +0000", record.PrecisionSecond},
		{"May 1 12:00:00", record.PrecisionSecond},
		{"1682942400", record.PrecisionSecond},
		{"1682942400000", record.PrecisionMilli},
	}
	for _, c := range cases {
		_, precision, ok := ParseTimestamp(c.in)
		require.True(t, ok, "expected %q to parse", c.in)
		assert.Equal(t, c.precision, precision, "for input %q", c.in)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, _, ok := ParseTimestamp("not a timestamp")
	assert.False(t, ok)
}

func TestReconstructYearRollsBackForFutureMonth(t *testing.T) {
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	bare := time.Date(0, time.December, 31, 23, 0, 0, 0, time.UTC)
	got := ReconstructYear(bare, now)
	assert.Equal(t, 2025, got.Year())
}

func TestReconstructYearKeepsCurrentYearForPastMonth(t *testing.T) {
	now := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)
	bare := time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	got := ReconstructYear(bare, now)
	assert.Equal(t, 2026, got.Year())
}
