// Package parser implements one Parser per supported log format plus the
// registry that auto-selects among them. Every parser follows the same
// contract: ParseLine never panics or returns an error for malformed
// input, instead marking the record with zero confidence and a non-empty
// ParseErrors slice, so a stream of mixed-quality input always produces a
// record per line.
package parser

import "github.com/loglens/loglens/internal/record"

// Parser is implemented by every format-specific and fallback parser.
type Parser interface {
	// Name is a unique, stable identifier.
	Name() string
	// SupportedFormats lists the aliases this parser answers to.
	SupportedFormats() []string
	// ParseLine parses a single line. It never returns an error; an
	// unparseable line still yields a Record with ParserConfidence 0 and a
	// non-empty ParseErrors.
	ParseLine(line string) record.Record
	// CanParse returns a confidence in [0,1] that this parser is the right
	// one for sample, based on the fraction of lines it can parse.
	CanParse(sample []string) float64
}

// ParseStream parses lines with p, skipping blank lines, and returns the
// resulting records in order. It is the default streaming behavior shared
// by every parser in this package.
func ParseStream(p Parser, lines []string) []record.Record {
	out := make([]record.Record, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		out = append(out, p.ParseLine(line))
	}
	return out
}

// fractionMatching returns the fraction of non-empty sample lines for
// which match returns true, the common shape behind every CanParse.
func fractionMatching(sample []string, match func(string) bool) float64 {
	total := 0
	hits := 0
	for _, line := range sample {
		if line == "" {
			continue
		}
		total++
		if match(line) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// truncate caps s at n bytes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
