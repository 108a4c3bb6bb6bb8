package correlate

import "github.com/loglens/loglens/internal/record"

// MaxOrphanEntries bounds the shared-identifier strategy's orphan buffer.
const MaxOrphanEntries = 10000

// DefaultBufferSize is the default memory cap (in accumulated records)
// before a streaming-capable strategy is forced to emit early.
const DefaultBufferSize = 10000

// DiagWarn receives the single per-run overflow diagnostics emitted when
// the orphan buffer or the session map hits its cap. Callers
// that want these surfaced (the CLI wires this to applog) replace it; the
// default is silent so library use without a configured diagnostic
// channel never writes to stderr on its own.
var DiagWarn func(string) = func(string) {}

// Strategy groups a stream of records into Groups, reporting any it could
// not place as orphans.
type Strategy interface {
	Name() string
	SupportsStreaming() bool
	Correlate(records []record.Record, bufferSize int) Result
}

// firstNonEmpty returns the first non-empty string among candidates.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// structuredAlias probes r.StructuredData for the first of aliases present
// as a non-empty string-able value.
func structuredAlias(r record.Record, aliases []string) string {
	for _, alias := range aliases {
		v, ok := r.StructuredData[alias]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
