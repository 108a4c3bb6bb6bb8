package parser

import (
	"strings"

	"github.com/loglens/loglens/internal/record"
)

// levelKeywords is checked in order; the first matching group wins, so
// "failed to decode debug output" still maps to Error before Debug gets a
// chance.
var levelKeywords = []struct {
	words []string
	level record.Level
}{
	{[]string{"error", "exception", "failed", "failure", "fatal", "panic"}, record.Error},
	{[]string{"warn", "warning", "deprecated", "caution"}, record.Warning},
	{[]string{"debug", "trace", "verbose"}, record.Debug},
}

// InferLevelFromMessage scans msg case-insensitively for level keywords,
// defaulting to Info when none match.
func InferLevelFromMessage(msg string) record.Level {
	lower := strings.ToLower(msg)
	for _, group := range levelKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return group.level
			}
		}
	}
	return record.Info
}
