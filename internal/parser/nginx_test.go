package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNginxAccessWithoutRefererUA(t *testing.T) {
	p := NewNginxAccess()
	line := `192.168.1.1 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.1" 404 0`
	r := p.ParseLine(line)

	require.NotNil(t, r.HTTP)
	assert.Equal(t, 404, r.HTTP.Status)
	assert.Equal(t, record.Warning, r.Level)
	assert.Nil(t, r.Network)
}

func TestNginxAccessWithRefererUA(t *testing.T) {
	p := NewNginxAccess()
	line := `192.168.1.1 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.1" 200 512 "http://x" "curl/7"`
	r := p.ParseLine(line)
	require.NotNil(t, r.Network)
	assert.Equal(t, "curl/7", r.Network.UserAgent)
}

func TestNginxErrorParsesLevelAndRequestID(t *testing.T) {
	p := NewNginxError()
	line := `2021/06/28 12:00:00 [error] 12345#0: *1 connect() to upstream failed`
	r := p.ParseLine(line)

	assert.Equal(t, record.Error, r.Level)
	assert.Equal(t, "1", r.Correlation.RequestID)
	assert.Contains(t, r.Message, "connect() to upstream failed")
	assert.Equal(t, 1.0, r.ParserConfidence)
}

func TestNginxErrorWithoutConnectionID(t *testing.T) {
	p := NewNginxError()
	line := `2021/06/28 12:00:00 [warn] 100#0: worker process exiting`
	r := p.ParseLine(line)
	assert.Equal(t, record.Warning, r.Level)
	assert.Empty(t, r.Correlation.RequestID)
}
