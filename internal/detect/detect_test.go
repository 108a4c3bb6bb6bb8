package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPicksJSON(t *testing.T) {
	d := NewDetector(DefaultSignatures())
	lines := []string{
		`{"level":"info","message":"a"}`,
		`{"level":"warn","message":"b"}`,
		`{"level":"error","message":"c"}`,
	}
	name, confidence := d.Detect(lines)
	assert.Equal(t, "json", name)
	assert.Equal(t, 1.0, confidence)
}

func TestDetectPicksApacheOverGenericNoise(t *testing.T) {
	d := NewDetector(DefaultSignatures())
	lines := []string{
		`127.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0" 200 100`,
		`127.0.0.1 - - [10/Oct/2000:13:55:37 -0700] "GET /x HTTP/1.0" 404 0`,
	}
	name, _ := d.Detect(lines)
	assert.Equal(t, "apache", name)
}

func TestDetectEmptyInputReturnsUnknown(t *testing.T) {
	d := NewDetector(DefaultSignatures())
	name, confidence := d.Detect(nil)
	assert.Equal(t, "unknown", name)
	assert.Equal(t, 0.0, confidence)

	name, confidence = d.Detect([]string{"", ""})
	assert.Equal(t, "unknown", name)
	assert.Equal(t, 0.0, confidence)
}

func TestDetectNoMatchReturnsGeneric(t *testing.T) {
	d := NewDetector(DefaultSignatures())
	name, confidence := d.Detect([]string{"completely unstructured free text with no markers"})
	assert.Equal(t, "generic", name)
	assert.Equal(t, 0.3, confidence)
}

func TestDetectAllRanksDescending(t *testing.T) {
	d := NewDetector(DefaultSignatures())
	lines := []string{
		`{"level":"info","message":"a"}`,
		`{"level":"warn","message":"b"}`,
	}
	results := d.DetectAll(lines)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "json", results[0].Name)
}

func TestDetectFileSamplesFirstLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	content := ""
	for i := 0; i < 5; i++ {
		content += `{"level":"info","message":"hello"}` + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d := NewDetector(DefaultSignatures())
	name, confidence, err := d.DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", name)
	assert.Equal(t, 1.0, confidence)
}

func TestDetectCombinedAccessLinesScoreMultipleSignatures(t *testing.T) {
	d := NewDetector(DefaultSignatures())
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, `10.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET /x HTTP/1.1" 200 120 "http://ref" "UA/1.0"`)
	}
	results := d.DetectAll(lines)
	require.NotEmpty(t, results)
	assert.Contains(t, []string{"apache", "nginx_access"}, results[0].Name)
	assert.Equal(t, 1.0, results[0].Confidence)
	assert.GreaterOrEqual(t, len(results), 2)
}
