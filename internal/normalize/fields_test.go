package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/internal/record"
)

func TestFieldStepRewritesKnownAliases(t *testing.T) {
	s := NewFieldStep(nil, false)
	r := record.New("line")
	r.StructuredData["msg"] = "hello"
	r.StructuredData["client_ip"] = "1.2.3.4"
	r.StructuredData["unrelated"] = "kept"

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.StructuredData["message"])
	assert.Equal(t, "1.2.3.4", out.StructuredData["ip"])
	assert.Equal(t, "kept", out.StructuredData["unrelated"])
	_, stillMsg := out.StructuredData["msg"]
	assert.False(t, stillMsg)
}

func TestFieldStepPreservesOriginalWhenRequested(t *testing.T) {
	s := NewFieldStep(nil, true)
	r := record.New("line")
	r.StructuredData["msg"] = "hello"

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.StructuredData["message"])
	assert.Equal(t, "hello", out.StructuredData["_original_msg"])
}

func TestFieldStepCustomAliasOverridesDefault(t *testing.T) {
	s := NewFieldStep(map[string]string{"msg": "body"}, false)
	r := record.New("line")
	r.StructuredData["msg"] = "hello"

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.StructuredData["body"])
}

func TestFieldStepSkipsWhenNoStructuredData(t *testing.T) {
	s := NewFieldStep(nil, false)
	r := record.New("line")

	out, err := s.Normalize(r)
	require.NoError(t, err)
	assert.Empty(t, out.StructuredData)
}
