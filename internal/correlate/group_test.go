package correlate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/loglens/loglens/internal/record"
)

func TestNewGroupDerivesSourcesAndTimeRange(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := record.New("a")
	a.Source.FilePath = "app1.log"
	ta := base
	a.Timestamp = &ta

	b := record.New("b")
	b.Source.FilePath = "app2.log"
	tb := base.Add(time.Minute)
	b.Timestamp = &tb

	g := NewGroup("g1", "key", "shared_identifier", []record.Record{a, b})
	assert.Len(t, g.Sources, 2)
	assert.Equal(t, ta, *g.MinTimestamp)
	assert.Equal(t, tb, *g.MaxTimestamp)
}

func TestNewResultComputesStats(t *testing.T) {
	a := record.New("a")
	b := record.New("b")
	g := NewGroup("g1", "key", "shared_identifier", []record.Record{a, b})
	orphan := record.New("c")

	res := NewResult([]Group{g}, []record.Record{orphan})
	assert.Equal(t, 3, res.Stats.TotalEntries)
	assert.Equal(t, 2, res.Stats.CorrelatedEntries)
	assert.Equal(t, 1, res.Stats.OrphanCount)
	assert.Equal(t, 2.0, res.Stats.MeanGroupSize)
	assert.InDelta(t, 2.0/3.0, res.Stats.CorrelationRate, 0.0001)
}
