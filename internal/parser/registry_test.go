package parser

import (
	"testing"

	"github.com/loglens/loglens/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolvesByNameAndAlias(t *testing.T) {
	reg := NewDefaultRegistry()

	p, ok := reg.GetParser("json")
	require.True(t, ok)
	assert.Equal(t, "json", p.Name())

	p, ok = reg.GetParser("apache_combined")
	require.True(t, ok)
	assert.Equal(t, "apache", p.Name())

	_, ok = reg.GetParser("does-not-exist")
	assert.False(t, ok)
}

func TestRegistryAliasWinsOverName(t *testing.T) {
	reg := NewRegistry()
	first := NewApache()
	reg.Register(first)

	second := &fakeAliasParser{name: "second", aliases: []string{"apache"}}
	reg.Register(second)

	p, ok := reg.GetParser("apache")
	require.True(t, ok)
	assert.Equal(t, "second", p.Name())
}

func TestRegistryGetBestParser(t *testing.T) {
	reg := NewDefaultRegistry()
	sample := []string{
		`{"level":"info","message":"hello"}`,
		`{"level":"warn","message":"careful"}`,
	}
	best, score := reg.GetBestParser(sample)
	require.NotNil(t, best)
	assert.Equal(t, "json", best.Name())
	assert.Greater(t, score, 0.9)
}

func TestRegistryListParsersAndFormats(t *testing.T) {
	reg := NewDefaultRegistry()
	names := reg.ListParsers()
	assert.Contains(t, names, "json")
	assert.Contains(t, names, "generic")

	formats := reg.ListFormats()
	assert.Contains(t, formats, "syslog")
}

type fakeAliasParser struct {
	name    string
	aliases []string
}

func (f *fakeAliasParser) Name() string { return f.name }
func (f *fakeAliasParser) SupportedFormats() []string { return f.aliases }
func (f *fakeAliasParser) ParseLine(line string) record.Record { return record.New(line) }
func (f *fakeAliasParser) CanParse(sample []string) float64 { return 0 }

func TestParseStreamSkipsBlankLines(t *testing.T) {
	p := NewGeneric()
	records := ParseStream(p, []string{"first", "", "second", ""})
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Raw)
	assert.Equal(t, "second", records[1].Raw)
}
