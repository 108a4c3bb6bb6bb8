package correlate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/internal/record"
)

func withTimestamp(msg string, t time.Time) record.Record {
	r := record.New(msg)
	r.Message = msg
	r.Timestamp = &t
	return r
}

func withNilTimestamp(msg string) record.Record {
	r := record.New(msg)
	r.Message = msg
	return r
}

func TestMergeOrdersByTimestampAcrossSources(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src1 := NewSliceIterator([]record.Record{
		withTimestamp("a1", base),
		withTimestamp("a3", base.Add(2*time.Second)),
	})
	src2 := NewSliceIterator([]record.Record{
		withTimestamp("a2", base.Add(1*time.Second)),
	})

	merged := Merge([]RecordIterator{src1, src2})
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, []string{merged[0].Message, merged[1].Message, merged[2].Message})
}

func TestMergeNilTimestampSortsFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src1 := NewSliceIterator([]record.Record{withTimestamp("timed", base)})
	src2 := NewSliceIterator([]record.Record{withNilTimestamp("untimed")})

	merged := Merge([]RecordIterator{src1, src2})
	require.Len(t, merged, 2)
	assert.Equal(t, "untimed", merged[0].Message)
	assert.Equal(t, "timed", merged[1].Message)
}

func TestMergeHandlesEmptySources(t *testing.T) {
	merged := Merge([]RecordIterator{NewSliceIterator(nil), NewSliceIterator(nil)})
	assert.Empty(t, merged)
}
