package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelParseIdempotent(t *testing.T) {
	for lvl := Trace; lvl <= Emergency; lvl++ {
		got := ParseLevel(lvl.String())
		assert.Equal(t, lvl, got, "round-trip for %s", lvl)
	}
}

func TestLevelAliases(t *testing.T) {
	cases := map[string]Level{
		"warn":    Warning,
		"WARN":    Warning,
		" Error ": Error,
		"err":     Error,
		"fatal":   Critical,
		"emerg":   Emergency,
		"panic":   Emergency,
		"d":       Debug,
		"5":       Notice,
		"bogus":   Unknown,
		"":        Unknown,
	}
	for in, want := range cases {
		assert.Equalf(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestIsError(t *testing.T) {
	r := New("line")
	r.Level = Info
	assert.False(t, r.IsError())
	r.Level = Error
	assert.True(t, r.IsError())
	r.Level = Critical
	assert.True(t, r.IsError())
}

func TestRoundTripMapping(t *testing.T) {
	ts := time.Date(2026, 1, 27, 10, 15, 32, 123000000, time.UTC)
	r := New(`{"msg":"hi"}`)
	r.Timestamp = &ts
	r.TimestampPrecision = PrecisionMilli
	r.Level = Error
	r.FormatDetected = "json_structured"
	r.Message = "hi"
	r.StructuredData["extra_field"] = "x"
	r.Source = Source{FilePath: "a.log", LineNumber: 4, Service: "api"}
	r.Correlation = Correlation{RequestID: "r1"}
	r.ParserName = "json"
	r.ParserConfidence = 1.0
	r.ParseErrors = nil
	r.Extra["vendor_field"] = 5

	m := r.ToMapping()
	back := FromMapping(m)

	require.Equal(t, r.ID, back.ID)
	require.NotNil(t, back.Timestamp)
	assert.True(t, ts.Equal(*back.Timestamp))
	assert.Equal(t, r.TimestampPrecision, back.TimestampPrecision)
	assert.Equal(t, r.Level, back.Level)
	assert.Equal(t, r.Message, back.Message)
	assert.Equal(t, r.Source.FilePath, back.Source.FilePath)
	assert.Equal(t, r.Source.LineNumber, back.Source.LineNumber)
	assert.Equal(t, r.Correlation.RequestID, back.Correlation.RequestID)
	assert.Equal(t, r.ParserName, back.ParserName)
	assert.Equal(t, r.ParserConfidence, back.ParserConfidence)
}

func TestNilSubrecordsElided(t *testing.T) {
	r := New("plain line")
	m := r.ToMapping()
	_, hasNetwork := m["network"]
	_, hasHTTP := m["http"]
	_, hasCorrelation := m["correlation"]
	assert.False(t, hasNetwork)
	assert.False(t, hasHTTP)
	assert.False(t, hasCorrelation)
}
