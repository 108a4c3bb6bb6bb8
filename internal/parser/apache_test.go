package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApacheParsesCommonFormat(t *testing.T) {
	p := NewApache()
	line := `127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326`
	r := p.ParseLine(line)

	require.NotNil(t, r.Timestamp)
	require.NotNil(t, r.HTTP)
	assert.Equal(t, "apache_common", r.FormatDetected)
	assert.Equal(t, "frank", r.Correlation.UserID)
	assert.Equal(t, 200, r.HTTP.Status)
	assert.Equal(t, "/apache_pb.gif", r.HTTP.Path)
	assert.Empty(t, r.HTTP.Query)
	assert.Equal(t, "HTTP/1.0", r.HTTP.HTTPVersion)
	assert.Equal(t, record.Info, r.Level)
	assert.Equal(t, 1.0, r.ParserConfidence)
}

func TestApacheSplitsPathAndQuery(t *testing.T) {
	p := NewApache()
	line := `127.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET /search?q=term&page=2 HTTP/1.1" 200 100`
	r := p.ParseLine(line)

	require.NotNil(t, r.HTTP)
	assert.Equal(t, "/search", r.HTTP.Path)
	assert.Equal(t, "q=term&page=2", r.HTTP.Query)
}

func TestApacheParsesCombinedFormat(t *testing.T) {
	p := NewApache()
	line := `10.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET /x HTTP/1.1" 500 120 "http://ref" "UA/1.0"`
	r := p.ParseLine(line)

	require.NotNil(t, r.Network)
	assert.Equal(t, "apache_combined", r.FormatDetected)
	assert.Equal(t, "http://ref", r.Network.Referer)
	assert.Equal(t, "UA/1.0", r.Network.UserAgent)
	assert.Equal(t, record.Error, r.Level)
	assert.Empty(t, r.Correlation.UserID)
}

func TestApacheRejectsUnmatchedLine(t *testing.T) {
	p := NewApache()
	r := p.ParseLine("not an apache log line at all")
	assert.Equal(t, 0.0, r.ParserConfidence)
	assert.NotEmpty(t, r.ParseErrors)
}
