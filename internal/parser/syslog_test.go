package parser

import (
	"testing"
	"time"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyslog3164ParsesPriAndReconstructsYear(t *testing.T) {
	p := &Syslog3164{Now: func() time.Time { return time.Date(2026, time.July, 31, 12, 0, 0, 0, time.UTC) }}
	line := `<34>Jan 12 22:14:15 myhost su[1234]: ` + "'" + `su root' failed for user on /dev/pts/8`
	r := p.ParseLine(line)

	require.NotNil(t, r.Timestamp)
	assert.Equal(t, 2026, r.Timestamp.Year())
	assert.Equal(t, "myhost", r.Source.Hostname)
	assert.Equal(t, "su", r.Extra["tag"])
	assert.Equal(t, 4, r.Extra["facility"])
	assert.Equal(t, record.Critical, r.Level)
}

func TestSyslog3164WithoutPri(t *testing.T) {
	p := NewSyslog3164()
	line := `Jan 12 22:14:15 myhost sshd: connection closed`
	r := p.ParseLine(line)
	assert.Equal(t, "myhost", r.Source.Hostname)
	assert.Equal(t, "sshd", r.Extra["tag"])

	// the assumed default priority must not invent a facility
	_, hasFacility := r.Extra["facility"]
	assert.False(t, hasFacility)
}

func TestSyslog3164RejectsUnmatched(t *testing.T) {
	p := NewSyslog3164()
	r := p.ParseLine("totally unstructured text")
	assert.Equal(t, 0.0, r.ParserConfidence)
}
