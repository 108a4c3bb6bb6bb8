package correlate

import (
	"fmt"

	"github.com/loglens/loglens/internal/record"
)

// defaultIdentifierAliases lists the structured-data fallback keys probed
// when a record carries no typed correlation identifier.
var defaultIdentifierAliases = []string{
	"request_id", "trace_id", "correlation_id", "span_id", "transaction_id", "x_request_id",
}

// SharedIdentifierStrategy groups records that share the same correlation
// identifier, preferring the typed Correlation sub-record fields over
// structured-data aliases. Non-streaming: it must see every candidate
// record under one key before it can decide the group is complete.
type SharedIdentifierStrategy struct {
	IdentifierAliases []string
}

func NewSharedIdentifierStrategy() *SharedIdentifierStrategy {
	return &SharedIdentifierStrategy{IdentifierAliases: defaultIdentifierAliases}
}

func (s *SharedIdentifierStrategy) Name() string { return "shared_identifier" }

func (s *SharedIdentifierStrategy) SupportsStreaming() bool { return false }

func (s *SharedIdentifierStrategy) identifierOf(r record.Record) string {
	if id := firstNonEmpty(r.Correlation.RequestID, r.Correlation.TraceID, r.Correlation.CorrelationID, r.Correlation.SessionID); id != "" {
		return id
	}
	return structuredAlias(r, s.IdentifierAliases)
}

func (s *SharedIdentifierStrategy) Correlate(records []record.Record, bufferSize int) Result {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	buckets := make(map[string][]record.Record)
	order := make([]string, 0)
	var orphans []record.Record
	var groups []Group
	overflowWarned := false
	accumulated := 0

	flush := func() {
		for _, key := range order {
			members := buckets[key]
			if len(members) >= 2 {
				groups = append(groups, NewGroup(fmt.Sprintf("shared:%s:%d", key, len(groups)), key, s.Name(), members))
			} else {
				orphans = append(orphans, members...)
			}
		}
		buckets = make(map[string][]record.Record)
		order = order[:0]
		accumulated = 0
	}

	for _, r := range records {
		id := s.identifierOf(r)
		if id == "" {
			if len(orphans) >= MaxOrphanEntries {
				if !overflowWarned {
					overflowWarned = true
					DiagWarn("shared_identifier: orphan buffer exceeded MaxOrphanEntries, dropping additional orphans")
				}
				continue
			}
			orphans = append(orphans, r)
			continue
		}
		if _, seen := buckets[id]; !seen {
			order = append(order, id)
		}
		buckets[id] = append(buckets[id], r)
		accumulated++
		if accumulated > bufferSize {
			flush()
		}
	}
	flush()

	return NewResult(groups, orphans)
}
