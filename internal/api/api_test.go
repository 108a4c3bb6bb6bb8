package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/internal/record"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormatJSON(t *testing.T) {
	path := writeFile(t, `{"level":"info","message":"hello"}`+"\n"+`{"level":"warn","message":"bye"}`+"\n")
	name, confidence, err := DetectFormat(path)
	require.NoError(t, err)
	assert.Equal(t, "json", name)
	assert.Equal(t, 1.0, confidence)
}

func TestParseAutoDetectsFormat(t *testing.T) {
	path := writeFile(t, `{"level":"info","message":"hello","request_id":"r1"}`+"\n")
	records, err := Parse(path, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "json_structured", records[0].FormatDetected)
	assert.Equal(t, "hello", records[0].Message)
	assert.Equal(t, path, records[0].Source.FilePath)
}

func TestParseWithExplicitFormat(t *testing.T) {
	path := writeFile(t, `127.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0" 200 100`+"\n")
	records, err := Parse(path, ParseOptions{Format: "apache"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "apache", records[0].ParserName)
}

func TestParseUnknownFormatIsConfigurationError(t *testing.T) {
	path := writeFile(t, "line\n")
	_, err := Parse(path, ParseOptions{Format: "not_a_format"})
	require.Error(t, err)
}

func TestStreamParseRequiresFormat(t *testing.T) {
	path := writeFile(t, "line\n")
	err := StreamParse(path, "", func(r record.Record) {}, nil)
	require.Error(t, err)
}

func TestStreamParseCallsOnEachPerLine(t *testing.T) {
	path := writeFile(t, `{"message":"a"}`+"\n"+`{"message":"b"}`+"\n")
	var got []string
	err := StreamParse(path, "json", func(r record.Record) {
		got = append(got, r.Message)
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCorrelateRequiresTwoFiles(t *testing.T) {
	path := writeFile(t, "line\n")
	_, err := Correlate([]string{path}, CorrelateOptions{})
	require.Error(t, err)
}

func TestCorrelateAcrossTwoFiles(t *testing.T) {
	a := writeFile(t, `{"message":"a","request_id":"r1"}`+"\n")
	b := writeFile(t, `{"message":"b","request_id":"r1"}`+"\n")
	res, err := Correlate([]string{a, b}, CorrelateOptions{Strategy: "request_id"})
	require.NoError(t, err)
	assert.Len(t, res.Groups, 1)
}
