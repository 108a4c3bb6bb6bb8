// Package safety implements the validation boundaries applied throughout
// ingestion and parsing: line-length capping, JSON-depth capping, regex
// vetting, CSV cell escaping, and symlink detection. These are always
// applied at their documented call sites; none are opt-in.
package safety

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/loglens/loglens/internal/errs"
)

const (
	DefaultMaxLineBytes = 10 * 1024 * 1024
	DefaultMaxJSONDepth = 50
	DefaultMaxRegexLen  = 1000
)

// CheckLineLength measures line by UTF-8 byte length (replacing invalid
// sequences first) and fails with LineLength when it exceeds max.
func CheckLineLength(line string, max int) error {
	if max <= 0 {
		max = DefaultMaxLineBytes
	}
	clean := strings.ToValidUTF8(line, string(utf8.RuneError))
	if len(clean) > max {
		return errs.NewValidationError(errs.LineLength,
			fmt.Sprintf("line length %d exceeds max %d", len(clean), max),
			map[string]any{"length": len(clean), "max": max})
	}
	return nil
}

// CheckJSONDepth traverses a decoded JSON value (maps and slices only,
// scalars are leaves) and fails on the first path exceeding max.
func CheckJSONDepth(v any, max int) error {
	if max <= 0 {
		max = DefaultMaxJSONDepth
	}
	if depthOf(v, 0, max) > max {
		return errs.NewValidationError(errs.JSONDepth,
			fmt.Sprintf("value nesting exceeds max depth %d", max),
			map[string]any{"max": max})
	}
	return nil
}

func depthOf(v any, current, max int) int {
	if current > max {
		return current
	}
	switch vv := v.(type) {
	case map[string]any:
		best := current
		for _, child := range vv {
			if d := depthOf(child, current+1, max); d > best {
				best = d
				if best > max {
					return best
				}
			}
		}
		return best
	case []any:
		best := current
		for _, child := range vv {
			if d := depthOf(child, current+1, max); d > best {
				best = d
				if best > max {
					return best
				}
			}
		}
		return best
	default:
		return current
	}
}

// reDoSPatterns are heuristic rejections for nested unbounded quantifiers
// inside a group followed by another unbounded quantifier on the group
// itself -- the classic catastrophic-backtracking shape, e.g. (a+)+ or
// (a*)*.
var reDoSPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\([^)]*\+[^)]*\)\+`),
	regexp.MustCompile(`\([^)]*\*[^)]*\)\*`),
	regexp.MustCompile(`\([^)]*\+[^)]*\)\*`),
	regexp.MustCompile(`\([^)]*\*[^)]*\)\+`),
}

// CompileRegex vets a pattern string (length, ReDoS heuristic) before
// compiling it case-insensitively. Syntax errors propagate as RegexSyntax.
func CompileRegex(pattern string, maxLen int) (*regexp.Regexp, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxRegexLen
	}
	if len(pattern) > maxLen {
		return nil, errs.NewValidationError(errs.RegexLength,
			fmt.Sprintf("pattern length %d exceeds max %d", len(pattern), maxLen), nil)
	}
	for _, bad := range reDoSPatterns {
		if bad.MatchString(pattern) {
			return nil, errs.NewValidationError(errs.RegexReDoS,
				"pattern contains nested quantifiers that risk catastrophic backtracking", nil)
		}
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errs.NewValidationError(errs.RegexSyntax, err.Error(), nil)
	}
	return re, nil
}

// csvTriggerPrefixes are the leading characters CSV readers interpret as
// formula syntax in spreadsheet programs.
var csvTriggerPrefixes = []byte{'=', '+', '-', '@', '\t', '\r'}

// EscapeCSVCell prefixes a cell with a single-quote when it begins with a
// formula-injection trigger character; otherwise it returns the cell
// unchanged.
func EscapeCSVCell(cell string) string {
	if cell == "" {
		return cell
	}
	for _, p := range csvTriggerPrefixes {
		if cell[0] == p {
			return "'" + cell
		}
	}
	return cell
}

// SymlinkInfo reports whether path is a symbolic link and, if so, its
// resolved target.
type SymlinkInfo struct {
	IsSymlink bool
	Target    string
}

// CheckSymlink inspects path's lstat to detect a symlink and resolves its
// target. warn, when non-nil, receives a diagnostic message when the path
// is a symlink.
func CheckSymlink(path string, warn func(string)) (SymlinkInfo, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return SymlinkInfo{}, err
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return SymlinkInfo{}, nil
	}
	target, err := os.Readlink(path)
	if err != nil {
		return SymlinkInfo{IsSymlink: true}, err
	}
	if warn != nil {
		warn(fmt.Sprintf("%s is a symlink to %s", path, target))
	}
	return SymlinkInfo{IsSymlink: true, Target: target}, nil
}
