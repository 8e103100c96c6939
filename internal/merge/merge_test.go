package merge

import (
	"testing"
	"time"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(sec int64) history.Event {
	return history.Event{Timestamp: time.Unix(sec, 0).UTC()}
}

func drain(m *Merge) []int64 {
	var got []int64
	for m.Next() {
		got = append(got, m.Event().Timestamp.Unix())
	}
	return got
}

func TestMergeAcrossThreeSources(t *testing.T) {
	a := NewSliceSource([]history.Event{at(5), at(3), at(1)})
	b := NewSliceSource([]history.Event{at(4), at(2)})
	c := NewSliceSource([]history.Event{at(6)})

	m := New([]Source{a, b, c})
	got := drain(m)
	require.NoError(t, m.Err())
	assert.Equal(t, []int64{6, 5, 4, 3, 2, 1}, got)
}

func TestMergeEmptySources(t *testing.T) {
	m := New(nil)
	got := drain(m)
	require.NoError(t, m.Err())
	assert.Empty(t, got)
}

func TestMergeIsLazy(t *testing.T) {
	// A source that panics if pulled past what's needed would fail
	// this test; SliceSource simply tracks how far it advanced.
	a := NewSliceSource([]history.Event{at(10), at(9), at(8)})
	b := NewSliceSource([]history.Event{at(1)})

	m := New([]Source{a, b})
	require.True(t, m.Next())
	assert.Equal(t, int64(10), m.Event().Timestamp.Unix())
	// stop early: b's single event was already pulled to prime the
	// heap (that's the cost of priming), and choosing a's head pulled
	// a's next frame (9) to take its place, but a's last frame (8)
	// should not have been materialized.
	assert.Equal(t, 1, a.at)
}
