package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
)

func TestGenericExtractsTimestampAndLevel(t *testing.T) {
	p := NewGeneric()
	r := p.ParseLine("2023-05-01 12:00:00 ERROR something went sideways")
	assert.NotNil(t, r.Timestamp)
	assert.Equal(t, record.Error, r.Level)
	assert.InDelta(t, 0.7, r.ParserConfidence, 0.001)
}

func TestGenericCapsConfidenceAtSevenTenths(t *testing.T) {
	p := NewGeneric()
	r := p.ParseLine("2023-05-01 12:00:00 WARNING disk low")
	assert.LessOrEqual(t, r.ParserConfidence, 0.7)
}

func TestGenericHandlesPlainText(t *testing.T) {
	p := NewGeneric()
	r := p.ParseLine("just some unstructured text")
	assert.Equal(t, record.Info, r.Level)
	assert.InDelta(t, 0.3, r.ParserConfidence, 0.001)
}
