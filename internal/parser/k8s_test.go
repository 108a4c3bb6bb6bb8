package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestK8sContainerPlainText(t *testing.T) {
	p := NewK8sContainer()
	r := p.ParseLine("2023-05-01T12:00:00.123456789Z stdout F server started")
	require.NotNil(t, r.Timestamp)
	assert.Equal(t, "stdout", r.Extra["stream"])
	assert.Equal(t, "server started", r.Message)
}

func TestK8sContainerDelegatesJSON(t *testing.T) {
	p := NewK8sContainer()
	r := p.ParseLine(`2023-05-01T12:00:00.123456789Z stdout F {"level":"error","message":"boom"}`)
	assert.Equal(t, "k8s_container_json", r.FormatDetected)
	assert.Equal(t, record.Error, r.Level)
	require.NotNil(t, r.Timestamp)
}

func TestK8sComponentParsesKlogLine(t *testing.T) {
	p := &K8sComponent{}
	r := p.ParseLine("I0612 10:20:30.123456   12345 controller.go:88] synced successfully")
	assert.Equal(t, record.Info, r.Level)
	assert.Equal(t, "controller.go", r.Extra["source_file"])
	assert.Equal(t, 88, r.Extra["source_line"])
	assert.Equal(t, "synced successfully", r.Message)
}

func TestK8sAuditParsesEvent(t *testing.T) {
	p := NewK8sAudit()
	line := `{"apiVersion":"audit.k8s.io/v1","kind":"Event","auditID":"abc-123","verb":"get","requestURI":"/api/v1/pods","user":{"username":"alice","groups":["system:authenticated"]},"responseStatus":{"code":200},"sourceIPs":["10.0.0.5"]}`
	r := p.ParseLine(line)

	assert.Equal(t, "abc-123", r.Correlation.RequestID)
	assert.Equal(t, "alice", r.Correlation.UserID)
	assert.Equal(t, "GET /api/v1/pods", r.Message)
	require.NotNil(t, r.Network)
	assert.Equal(t, "10.0.0.5", r.Network.SrcIP)
	assert.Equal(t, record.Info, r.Level)
}

func TestK8sAuditRejectsNonAuditJSON(t *testing.T) {
	p := NewK8sAudit()
	r := p.ParseLine(`{"apiVersion":"v1","kind":"Pod"}`)
	assert.Equal(t, 0.0, r.ParserConfidence)
}

func TestK8sEventParsesJSON(t *testing.T) {
	p := NewK8sEvent()
	line := `{"involvedObject":{"kind":"Pod","name":"web-1"},"reason":"Scheduled","message":"Successfully assigned default/web-1","type":"Normal","lastTimestamp":"2023-05-01T12:00:00Z"}`
	r := p.ParseLine(line)
	assert.Equal(t, record.Info, r.Level)
	assert.Equal(t, "Pod/web-1", r.Extra["involved_object"])
	assert.Equal(t, "Successfully assigned default/web-1", r.Message)
}

func TestK8sEventParsesTabular(t *testing.T) {
	p := NewK8sEvent()
	r := p.ParseLine("2m          Warning   BackOff   pod/web-1   Back-off restarting failed container")
	assert.Equal(t, record.Warning, r.Level)
	assert.Equal(t, "BackOff", r.Extra["reason"])
}

func TestK8sEventTableHeader(t *testing.T) {
	p := NewK8sEvent()
	r := p.ParseLine("AGE   TYPE      REASON    OBJECT      MESSAGE")
	assert.Equal(t, record.Unknown, r.Level)
	assert.Less(t, r.ParserConfidence, 0.5)
}
