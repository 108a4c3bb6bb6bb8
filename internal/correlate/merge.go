// Package correlate implements the k-way timestamp merge and the three
// correlation strategies (shared identifier, timestamp window, session)
// that group merged records into related clusters. The merge is an
// explicit timestamp-ordered min-heap fan-in, since every grouping
// strategy downstream depends on approximate time order.
package correlate

import (
	"container/heap"

	"github.com/loglens/loglens/internal/record"
)

// RecordIterator yields records one at a time, mirroring the pull-based
// shape of source.Source and parser.ParseStream output.
type RecordIterator interface {
	Next() (record.Record, bool)
}

// SliceIterator adapts a pre-parsed slice to RecordIterator, for callers
// (tests, batch CLI commands) that already hold every record in memory.
type SliceIterator struct {
	records []record.Record
	pos     int
}

func NewSliceIterator(records []record.Record) *SliceIterator {
	return &SliceIterator{records: records}
}

func (s *SliceIterator) Next() (record.Record, bool) {
	if s.pos >= len(s.records) {
		return record.Record{}, false
	}
	r := s.records[s.pos]
	s.pos++
	return r, true
}

type mergeItem struct {
	rec         record.Record
	sourceIndex int
}

type mergeHeap []mergeItem

func (h mergeHeap) Len() int { return len(h) }

func (h mergeHeap) Less(i, j int) bool {
	ti, tj := h[i].rec.Timestamp, h[j].rec.Timestamp
	switch {
	case ti == nil && tj == nil:
		return h[i].sourceIndex < h[j].sourceIndex
	case ti == nil:
		return true
	case tj == nil:
		return false
	case ti.Equal(*tj):
		return h[i].sourceIndex < h[j].sourceIndex
	default:
		return ti.Before(*tj)
	}
}

func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *mergeHeap) Push(x any) { *h = append(*h, x.(mergeItem)) }

func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merge performs a timestamp-ordered k-way merge across sources, one
// RecordIterator per source. A record with a nil timestamp sorts as the
// earliest possible instant so a timestamp-less source never starves
// behind sources that do have timestamps. Memory use is O(len(sources)):
// exactly one pulled-ahead record is held per source at any time.
func Merge(sources []RecordIterator) []record.Record {
	h := make(mergeHeap, 0, len(sources))
	heap.Init(&h)
	for idx, src := range sources {
		if r, ok := src.Next(); ok {
			heap.Push(&h, mergeItem{rec: r, sourceIndex: idx})
		}
	}

	var out []record.Record
	for h.Len() > 0 {
		item := heap.Pop(&h).(mergeItem)
		out = append(out, item.rec)
		if next, ok := sources[item.sourceIndex].Next(); ok {
			heap.Push(&h, mergeItem{rec: next, sourceIndex: item.sourceIndex})
		}
	}
	return out
}
