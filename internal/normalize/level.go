package normalize

import (
	"fmt"

	"github.com/loglens/loglens/internal/record"
)

// levelHintAliases lists the structured-data keys checked, in order, when
// a record's Level is Unknown.
var levelHintAliases = []string{"level", "severity", "loglevel", "log_level", "priority"}

// LevelStep resolves an Unknown record level from a level hint buried in
// StructuredData, for parsers (the generic fallback chief among them) that
// could not confidently classify severity on their own.
type LevelStep struct{}

func NewLevelStep() *LevelStep { return &LevelStep{} }

func (s *LevelStep) Normalize(r record.Record) (record.Record, error) {
	if r.Level != record.Unknown {
		return r, nil
	}
	for _, alias := range levelHintAliases {
		v, ok := r.StructuredData[alias]
		if !ok {
			continue
		}
		hint := fmt.Sprint(v)
		if lvl := record.ParseLevel(hint); lvl != record.Unknown {
			r.Level = lvl
			return r, nil
		}
	}
	return r, nil
}
