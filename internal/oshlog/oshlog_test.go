package oshlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(sec int64, cmd string) history.Event {
	return history.Event{Timestamp: time.Unix(sec, 0).UTC(), Command: cmd}
}

func readAllReverse(t *testing.T, path string) []history.Event {
	t.Helper()
	it, err := ReverseScan(path, time.Second)
	require.NoError(t, err)
	defer it.Close()

	var got []history.Event
	for it.Next() {
		got = append(got, it.Event())
	}
	require.NoError(t, it.Err())
	return got
}

func TestOrderedInsertInTheMiddle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.osh")

	require.NoError(t, Insert(path, eventAt(1000, "a"), time.Second))
	require.NoError(t, Insert(path, eventAt(3000, "b"), time.Second))
	require.NoError(t, Insert(path, eventAt(4000, "c"), time.Second))
	require.NoError(t, Insert(path, eventAt(2500, "ls"), time.Second))

	got := readAllReverse(t, path)
	require.Len(t, got, 4)

	var timestamps []int64
	for _, e := range got {
		timestamps = append(timestamps, e.Timestamp.Unix())
	}
	assert.Equal(t, []int64{4000, 3000, 2500, 1000}, timestamps)
	assert.Equal(t, "ls", got[2].Command)
}

func TestEmptyFileReverseScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.osh")
	got := readAllReverse(t, path)
	assert.Empty(t, got)
}

func TestInsertOnEmptyFileProducesOneFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.osh")
	require.NoError(t, Insert(path, eventAt(42, "echo hi"), time.Second))

	got := readAllReverse(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, "echo hi", got[0].Command)
}

func TestForwardWriteThenReverseScanIsReversed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archived.osh")
	forward := []history.Event{eventAt(1, "a"), eventAt(2, "b"), eventAt(3, "c")}
	require.NoError(t, ForwardWrite(path, forward, time.Second))

	got := readAllReverse(t, path)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].Command)
	assert.Equal(t, "b", got[1].Command)
	assert.Equal(t, "a", got[2].Command)
}

func TestInsertOversizedEventIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.osh")
	require.NoError(t, Insert(path, eventAt(1, "a"), time.Second))

	big := eventAt(2, string(make([]byte, history.MaxPayloadSize+10)))
	require.NoError(t, Insert(path, big, time.Second))

	got := readAllReverse(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Command)
}
