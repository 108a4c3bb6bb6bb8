package normalize

import "github.com/loglens/loglens/internal/record"

// defaultFieldAliases maps a lowercase structured-data key spelling to its
// canonical name. Only keys present in this table are rewritten; anything
// else passes through unchanged.
var defaultFieldAliases = map[string]string{
	"@timestamp":  "timestamp",
	"time":        "timestamp",
	"ts":          "timestamp",
	"msg":         "message",
	"log":         "message",
	"text":        "message",
	"severity":    "level",
	"lvl":         "level",
	"client_ip":   "ip",
	"remote_addr": "ip",
	"status_code": "status",
	"http_status": "status",
	"duration_ms": "duration",
	"elapsed":     "duration",
	"latency":     "duration",
}

// FieldStep rewrites StructuredData keys to canonical names using Aliases
// (merged over defaultFieldAliases), optionally preserving the original
// key alongside the canonical one.
type FieldStep struct {
	Aliases          map[string]string
	PreserveOriginal bool
}

// NewFieldStep builds a FieldStep. custom entries override the defaults
// for identical keys; pass nil to use the defaults unmodified.
func NewFieldStep(custom map[string]string, preserveOriginal bool) *FieldStep {
	merged := make(map[string]string, len(defaultFieldAliases)+len(custom))
	for k, v := range defaultFieldAliases {
		merged[k] = v
	}
	for k, v := range custom {
		merged[k] = v
	}
	return &FieldStep{Aliases: merged, PreserveOriginal: preserveOriginal}
}

func (s *FieldStep) Normalize(r record.Record) (record.Record, error) {
	if len(r.StructuredData) == 0 {
		return r, nil
	}
	rewritten := make(map[string]any, len(r.StructuredData))
	for k, v := range r.StructuredData {
		canonical, ok := s.Aliases[k]
		if !ok {
			rewritten[k] = v
			continue
		}
		rewritten[canonical] = v
		if s.PreserveOriginal && canonical != k {
			rewritten["_original_"+k] = v
		}
	}
	r.StructuredData = rewritten
	return r, nil
}
