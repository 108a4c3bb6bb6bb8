package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdLibThreadedForm(t *testing.T) {
	p := NewStdLib()
	r := p.ParseLine("2023-05-01 12:00:00,123 [Thread-1] INFO  com.example.Worker - job completed")
	assert.Equal(t, "stdlib_threaded", r.FormatDetected)
	assert.Equal(t, record.Info, r.Level)
	assert.Equal(t, "com.example.Worker", r.Source.Service)
	assert.Equal(t, "Thread-1", r.Extra["thread"])
	assert.Equal(t, "job completed", r.Message)
}

func TestStdLibFullForm(t *testing.T) {
	p := NewStdLib()
	r := p.ParseLine("2023-05-01 12:00:00,123 - mylogger - WARNING - disk nearly full")
	assert.Equal(t, "stdlib_full", r.FormatDetected)
	assert.Equal(t, record.Warning, r.Level)
	assert.Equal(t, "mylogger", r.Source.Service)
}

func TestStdLibAlternateForm(t *testing.T) {
	p := NewStdLib()
	r := p.ParseLine("2023-05-01 12:00:00,123 ERROR mylogger something broke")
	assert.Equal(t, "stdlib_alternate", r.FormatDetected)
	assert.Equal(t, record.Error, r.Level)
	assert.Equal(t, "something broke", r.Message)
}

func TestStdLibSimpleForm(t *testing.T) {
	p := NewStdLib()
	r := p.ParseLine("INFO:mylogger:starting up")
	assert.Equal(t, "stdlib_simple", r.FormatDetected)
	assert.Equal(t, record.Info, r.Level)
	assert.Equal(t, "mylogger", r.Source.Service)
	assert.Equal(t, "starting up", r.Message)
}

func TestStdLibRejectsUnmatched(t *testing.T) {
	p := NewStdLib()
	r := p.ParseLine("####")
	require.Equal(t, 0.0, r.ParserConfidence)
}
