package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockerJSONParsesLogEntry(t *testing.T) {
	p := NewDockerJSON()
	r := p.ParseLine(`{"log":"server started\n","stream":"stdout","time":"2023-05-01T12:00:00.123456789Z"}`)
	require.NotNil(t, r.Timestamp)
	assert.Equal(t, "server started", r.Message)
	assert.Equal(t, "stdout", r.Extra["stream"])
	assert.Equal(t, record.Info, r.Level)
}

func TestDockerJSONStderrDefaultsToWarning(t *testing.T) {
	p := NewDockerJSON()
	r := p.ParseLine(`{"log":"routine output\n","stream":"stderr","time":"2023-05-01T12:00:00Z"}`)
	assert.Equal(t, record.Warning, r.Level)
}

func TestDockerJSONStderrKeepsErrorLevel(t *testing.T) {
	p := NewDockerJSON()
	r := p.ParseLine(`{"log":"fatal: crashed\n","stream":"stderr","time":"2023-05-01T12:00:00Z"}`)
	assert.Equal(t, record.Error, r.Level)
}

func TestDockerJSONRejectsNonDockerJSON(t *testing.T) {
	p := NewDockerJSON()
	r := p.ParseLine(`{"foo":"bar"}`)
	assert.Equal(t, 0.0, r.ParserConfidence)
}

func TestDockerDaemonLogfmt(t *testing.T) {
	p := NewDockerDaemon()
	r := p.ParseLine(`time="2023-05-01T12:00:00Z" level=info msg="API listen on /var/run/docker.sock"`)
	assert.Equal(t, "docker_daemon_logfmt", r.FormatDetected)
	assert.Equal(t, record.Info, r.Level)
	assert.Equal(t, "API listen on /var/run/docker.sock", r.Message)
}

func TestDockerDaemonJournal(t *testing.T) {
	p := NewDockerDaemon()
	r := p.ParseLine(`Jan 12 08:00:00 host1 dockerd[100]: containerd: started new shim`)
	assert.Equal(t, "docker_daemon_journal", r.FormatDetected)
	assert.Equal(t, "host1", r.Source.Hostname)
	assert.Contains(t, r.Message, "containerd")
}

func TestDockerDaemonGenericKV(t *testing.T) {
	p := NewDockerDaemon()
	r := p.ParseLine(`action=create id=abc123 status=ok`)
	assert.Equal(t, "docker_daemon_kv", r.FormatDetected)
	assert.Equal(t, "abc123", r.Extra["id"])
}
