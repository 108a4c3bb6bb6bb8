package parser

import (
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParsesCanonicalFields(t *testing.T) {
	p := NewJSON()
	line := `{"timestamp":"2023-05-01T12:00:00Z","level":"error","message":"disk full","request_id":"abc123","host":"web-1","extra_field":42}`
	r := p.ParseLine(line)

	require.NotNil(t, r.Timestamp)
	assert.Equal(t, record.Error, r.Level)
	assert.Equal(t, "disk full", r.Message)
	assert.Equal(t, "abc123", r.Correlation.RequestID)
	assert.Equal(t, "web-1", r.Source.Hostname)
	assert.Equal(t, float64(42), r.Extra["extra_field"])
	assert.Equal(t, 1.0, r.ParserConfidence)
}

func TestJSONSynthesizesMessageWhenAbsent(t *testing.T) {
	p := NewJSON()
	r := p.ParseLine(`{"action":"user_signup","user":"bob"}`)
	assert.Equal(t, "action=user_signup", r.Message)
	assert.Equal(t, 1.0, r.ParserConfidence)
}

func TestJSONSynthesizesMessageFromFirstKeysInDocumentOrder(t *testing.T) {
	p := NewJSON()
	r := p.ParseLine(`{"z":1,"a":2,"m":3,"q":4}`)
	assert.Equal(t, "z=1, a=2, m=3", r.Message)
}

func TestJSONRejectsNonObject(t *testing.T) {
	p := NewJSON()
	r := p.ParseLine(`[1,2,3]`)
	assert.Equal(t, 0.0, r.ParserConfidence)
	assert.NotEmpty(t, r.ParseErrors)
}

func TestJSONRejectsInvalidJSON(t *testing.T) {
	p := NewJSON()
	r := p.ParseLine(`{not json`)
	assert.Equal(t, 0.0, r.ParserConfidence)
	assert.NotEmpty(t, r.ParseErrors)
	assert.LessOrEqual(t, len(r.Message), 200)
}

func TestJSONCanParse(t *testing.T) {
	p := NewJSON()
	score := p.CanParse([]string{`{"a":1}`, `not json`, `{"b":2}`})
	assert.InDelta(t, 2.0/3.0, score, 0.01)
}

func TestJSONMillisecondPrecisionAndCorrelation(t *testing.T) {
	p := NewJSON()
	r := p.ParseLine(`{"timestamp":"2026-01-27T10:15:32.123Z","level":"INFO","message":"up","request_id":"r1"}`)
	require.NotNil(t, r.Timestamp)
	assert.Equal(t, record.PrecisionMilli, r.TimestampPrecision)
	assert.Equal(t, "r1", r.Correlation.RequestID)
	assert.False(t, r.IsError())

	r = p.ParseLine(`{"timestamp":"2026-01-27T10:15:33.456Z","level":"ERROR","message":"db down","request_id":"r1"}`)
	assert.True(t, r.IsError())
}

func TestJSONDepthLimitMarksRecord(t *testing.T) {
	p := NewJSON()
	line := ""
	for i := 0; i < 60; i++ {
		line += `{"a":`
	}
	line += `1`
	for i := 0; i < 60; i++ {
		line += `}`
	}
	r := p.ParseLine(line)
	assert.Equal(t, 0.0, r.ParserConfidence)
	require.NotEmpty(t, r.ParseErrors)
	assert.Contains(t, r.ParseErrors[0], "depth")
	assert.True(t, strings.HasSuffix(r.Message, "…"))
	assert.LessOrEqual(t, len(r.Message), 200+len("…"))
}
