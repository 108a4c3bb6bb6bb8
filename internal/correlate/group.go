package correlate

import (
	"time"

	"github.com/loglens/loglens/internal/record"
)

// Group is a set of related records under one strategy-assigned key.
// NewGroup computes Sources and the timestamp range from the members.
type Group struct {
	ID              string
	CorrelationKey  string
	CorrelationType string
	Members         []record.Record
	Sources         map[string]struct{}
	MinTimestamp    *time.Time
	MaxTimestamp    *time.Time
	Metadata        map[string]any
}

// NewGroup builds a Group from members, always deriving Sources and the
// timestamp range from them.
func NewGroup(id, key, correlationType string, members []record.Record) Group {
	g := Group{
		ID:              id,
		CorrelationKey:  key,
		CorrelationType: correlationType,
		Members:         members,
		Metadata:        make(map[string]any),
	}
	g.deriveSources()
	g.deriveTimeRange()
	return g
}

func (g *Group) deriveSources() {
	g.Sources = make(map[string]struct{})
	for _, m := range g.Members {
		if id := sourceIdentifier(m); id != "" {
			g.Sources[id] = struct{}{}
		}
	}
}

func (g *Group) deriveTimeRange() {
	for _, m := range g.Members {
		if m.Timestamp == nil {
			continue
		}
		if g.MinTimestamp == nil || m.Timestamp.Before(*g.MinTimestamp) {
			t := *m.Timestamp
			g.MinTimestamp = &t
		}
		if g.MaxTimestamp == nil || m.Timestamp.After(*g.MaxTimestamp) {
			t := *m.Timestamp
			g.MaxTimestamp = &t
		}
	}
}

// sourceIdentifier picks the most specific identifier available for a
// record's originating source, for the purpose of counting distinct
// sources in a group.
func sourceIdentifier(r record.Record) string {
	switch {
	case r.Source.FilePath != "":
		return r.Source.FilePath
	case r.Source.ContainerID != "":
		return r.Source.ContainerID
	case r.Source.PodName != "":
		return r.Source.PodName
	case r.Source.Hostname != "":
		return r.Source.Hostname
	default:
		return ""
	}
}

// Result is the outcome of running one or more correlation strategies
// over a merged record stream: the groups formed, the records no
// strategy claimed, and summary statistics.
type Result struct {
	Groups  []Group
	Orphans []record.Record
	Stats   Stats
}

// Stats summarizes a Result. Computed by NewResult from Groups/Orphans.
type Stats struct {
	TotalEntries      int     `json:"total_entries"`
	CorrelatedEntries int     `json:"correlated_entries"`
	OrphanCount       int     `json:"orphan_count"`
	DistinctSources   int     `json:"distinct_sources"`
	MeanGroupSize     float64 `json:"mean_group_size"`
	CorrelationRate   float64 `json:"correlation_rate"`
}

// NewResult builds a Result and its derived Stats from groups and
// orphans.
func NewResult(groups []Group, orphans []record.Record) Result {
	correlated := 0
	sources := make(map[string]struct{})
	for _, g := range groups {
		correlated += len(g.Members)
		for s := range g.Sources {
			sources[s] = struct{}{}
		}
	}
	for _, o := range orphans {
		if id := sourceIdentifier(o); id != "" {
			sources[id] = struct{}{}
		}
	}

	total := correlated + len(orphans)
	stats := Stats{
		TotalEntries:      total,
		CorrelatedEntries: correlated,
		OrphanCount:       len(orphans),
		DistinctSources:   len(sources),
	}
	if len(groups) > 0 {
		stats.MeanGroupSize = float64(correlated) / float64(len(groups))
	}
	if total > 0 {
		stats.CorrelationRate = float64(correlated) / float64(total)
	}

	return Result{Groups: groups, Orphans: orphans, Stats: stats}
}
