package correlate

import "github.com/loglens/loglens/internal/record"

// MultiStrategy runs a fixed ordered list of strategies over one record
// stream. Each strategy after the first sees only records no earlier
// strategy claimed; "claimed" is tracked by the record's unique id, not
// by structural equality, so two identical-looking records are never
// conflated.
type MultiStrategy struct {
	Strategies []Strategy
}

// NewMultiStrategy builds the orchestrator running strategies in order.
func NewMultiStrategy(strategies ...Strategy) *MultiStrategy {
	return &MultiStrategy{Strategies: strategies}
}

// Name identifies this strategy as required by the Strategy interface.
func (m *MultiStrategy) Name() string { return "multi" }

// SupportsStreaming reports false since Correlate requires the full record
// slice up front to hand remaining records between sub-strategies.
func (m *MultiStrategy) SupportsStreaming() bool { return false }

// NewDefaultMultiStrategy runs the three built-in strategies in
// their documented order: shared identifier, then timestamp window, then
// session.
func NewDefaultMultiStrategy() *MultiStrategy {
	return NewMultiStrategy(
		NewSharedIdentifierStrategy(),
		NewTimestampWindowStrategy(),
		NewSessionStrategy(),
	)
}

// Correlate runs every strategy in order against the records not yet
// claimed by an earlier one, accumulating groups. The final orphan list
// is exactly the records no strategy grouped.
func (m *MultiStrategy) Correlate(records []record.Record, bufferSize int) Result {
	remaining := records
	var allGroups []Group

	for _, strategy := range m.Strategies {
		res := strategy.Correlate(remaining, bufferSize)
		allGroups = append(allGroups, res.Groups...)

		claimed := make(map[string]struct{})
		for _, g := range res.Groups {
			for _, member := range g.Members {
				claimed[member.ID.String()] = struct{}{}
			}
		}
		if len(claimed) == 0 {
			continue
		}
		next := make([]record.Record, 0, len(remaining)-len(claimed))
		for _, r := range remaining {
			if _, ok := claimed[r.ID.String()]; ok {
				continue
			}
			next = append(next, r)
		}
		remaining = next
	}

	return NewResult(allGroups, remaining)
}
