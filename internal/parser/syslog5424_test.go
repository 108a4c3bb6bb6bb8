package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyslog5424ParsesStructuredData(t *testing.T) {
	p := NewSyslog5424()
	line := `<165>1 2003-10-11T22:14:15.003Z mymachine.example.com evntslog - ID47 [exampleSDID@32473 iut="3" eventSource="Application" eventID="1011"] An application event log entry`
	r := p.ParseLine(line)

	require.NotNil(t, r.Timestamp)
	assert.Equal(t, "mymachine.example.com", r.Source.Hostname)
	assert.Equal(t, "evntslog", r.Source.Service)
	assert.Equal(t, "ID47", r.Extra["msg_id"])
	assert.Equal(t, record.Notice, r.Level)
	require.Contains(t, r.StructuredData, "exampleSDID@32473")
	sd, ok := r.StructuredData["exampleSDID@32473"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "3", sd["iut"])
	assert.Equal(t, 1.0, r.ParserConfidence)
}

func TestSyslog5424ElidesNilValue(t *testing.T) {
	p := NewSyslog5424()
	line := `<34>1 2003-10-11T22:14:15.003Z - - - - - message body`
	r := p.ParseLine(line)
	assert.Empty(t, r.Source.Hostname)
	assert.Empty(t, r.Extra["msg_id"])
}

func TestSyslog5424RejectsUnmatched(t *testing.T) {
	p := NewSyslog5424()
	r := p.ParseLine("not syslog at all")
	assert.Equal(t, 0.0, r.ParserConfidence)
}
