package safety

import (
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineLength(t *testing.T) {
	short := "hello"
	require.NoError(t, CheckLineLength(short, 10))

	long := strings.Repeat("a", 11)
	err := CheckLineLength(long, 10)
	require.Error(t, err)
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, errs.LineLength, ve.Kind)
}

func TestJSONDepth(t *testing.T) {
	shallow := map[string]any{"a": 1}
	require.NoError(t, CheckJSONDepth(shallow, 5))

	var deep any = "leaf"
	for i := 0; i < 60; i++ {
		deep = map[string]any{"n": deep}
	}
	err := CheckJSONDepth(deep, 50)
	require.Error(t, err)
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, errs.JSONDepth, ve.Kind)
}

func TestRegexReDoSRejection(t *testing.T) {
	_, err := CompileRegex("(a+)+b", 1000)
	require.Error(t, err)
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, errs.RegexReDoS, ve.Kind)
}

func TestRegexLengthRejection(t *testing.T) {
	_, err := CompileRegex(strings.Repeat("a", 1001), 1000)
	require.Error(t, err)
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, errs.RegexLength, ve.Kind)
}

func TestRegexSyntaxError(t *testing.T) {
	_, err := CompileRegex("(unterminated", 1000)
	require.Error(t, err)
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, errs.RegexSyntax, ve.Kind)
}

func TestRegexCompilesGoodPattern(t *testing.T) {
	re, err := CompileRegex("error.*timeout", 1000)
	require.NoError(t, err)
	assert.True(t, re.MatchString("ERROR: timeout reached"))
}

func TestCSVEscape(t *testing.T) {
	cases := map[string]string{
		"=cmd":   "'=cmd",
		"+1":     "'+1",
		"-1":     "'-1",
		"@user":  "'@user",
		"normal": "normal",
		"":       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeCSVCell(in))
	}
}
