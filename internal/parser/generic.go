package parser

import (
	"regexp"
	"strings"

	"github.com/loglens/loglens/internal/record"
)

var genericTimestampPrefixRE = regexp.MustCompile(
	`^(\d{4}[-/]\d{2}[-/]\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?|\w{3}\s+\d{1,2} \d{2}:\d{2}:\d{2})\s*`)

var genericLevelTokenRE = regexp.MustCompile(`(?i)\b(trace|debug|info|notice|warn(?:ing)?|error|critical|fatal|alert|emergency)\b`)

// Generic is the catch-all parser: it extracts a leading timestamp when
// one is present and keyword-scans for a level token, but never scores
// above 0.7 so any format-specific parser always outranks it.
type Generic struct{}

func NewGeneric() *Generic { return &Generic{} }

func (p *Generic) Name() string { return "generic" }

func (p *Generic) SupportedFormats() []string { return []string{"generic", "unknown"} }

func (p *Generic) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()
	r.FormatDetected = "generic"

	confidence := 0.3
	rest := line
	if m := genericTimestampPrefixRE.FindStringSubmatch(line); m != nil {
		if t, precision, ok := ParseTimestamp(strings.TrimSpace(m[1])); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
			confidence += 0.2
			rest = line[len(m[0]):]
		}
	}

	if lvl := genericLevelTokenRE.FindString(rest); lvl != "" {
		r.Level = record.ParseLevel(lvl)
		confidence += 0.2
	} else {
		r.Level = InferLevelFromMessage(rest)
	}

	r.Message = strings.TrimSpace(rest)
	if confidence > 0.7 {
		confidence = 0.7
	}
	r.ParserConfidence = confidence
	return r
}

// CanParse always reports the capped generic confidence: the fallback
// parser can "parse" anything, just never better than a real match.
func (p *Generic) CanParse(sample []string) float64 {
	if len(sample) == 0 {
		return 0
	}
	return 0.3
}
