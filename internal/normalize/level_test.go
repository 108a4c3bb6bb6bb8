package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/internal/record"
)

func TestLevelStepLeavesKnownLevelAlone(t *testing.T) {
	s := NewLevelStep()
	r := record.New("line")
	r.Level = record.Error
	r.StructuredData["level"] = "info"

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, record.Error, out.Level)
}

func TestLevelStepResolvesFromHintAlias(t *testing.T) {
	s := NewLevelStep()
	r := record.New("line")
	r.StructuredData["severity"] = "warn"

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, record.Warning, out.Level)
}

func TestLevelStepNoHintLeavesUnknown(t *testing.T) {
	s := NewLevelStep()
	r := record.New("line")

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, record.Unknown, out.Level)
}
