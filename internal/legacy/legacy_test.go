package legacy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadZshWithContinuation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.zsh_history")
	content := ": 1700000000:0;echo one\\\n two\n: 1700000001:0;ls\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := ReadZsh(path)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// newest first
	assert.Equal(t, "ls", events[0].Command)
	assert.Equal(t, time.Unix(1700000001, 0).UTC(), events[0].Timestamp)
	assert.Nil(t, events[0].Duration)

	assert.Equal(t, "echo one\n two", events[1].Command)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), events[1].Timestamp)
}

func TestReadZshMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zsh_history")
	require.NoError(t, os.WriteFile(path, []byte("not a history line\n"), 0o644))

	_, err := ReadZsh(path)
	require.ErrorIs(t, err, ErrParse)
}

func TestReadZshUnsortedIsSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unsorted.zsh_history")
	content := ": 100:0;second\n: 50:0;first\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := ReadZsh(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Command)
	assert.Equal(t, "first", events[1].Command)
}

func TestReadOshLegacySkipsImportedZsh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.osh_legacy")
	content := `[
		{"timestamp": "2023-01-01T00:00:00+00:00", "command": "no session here"},
		{"timestamp": "2023-01-02T00:00:00+00:00", "command": "ls", "duration": 1, "exit_code": 0, "folder": "/tmp", "machine": "m1", "session": "s1"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := ReadOshLegacy(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ls", events[0].Command)
	require.NotNil(t, events[0].Session)
	assert.Equal(t, "s1", *events[0].Session)
}

func TestReadOshLegacyMicrosecondTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.osh_legacy")
	content := `[
		{"timestamp": "2023-01-02T00:00:00.123456+00:00", "command": "ls", "duration": 1, "exit_code": 0, "folder": "/tmp", "machine": "m1", "session": "s1"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := ReadOshLegacy(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 123456000, events[0].Timestamp.Nanosecond())
}

func TestReadOshLegacyBareTimestampIsUTC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.osh_legacy")
	content := `[
		{"timestamp": "2023-01-02T00:00:00.500000", "command": "ls", "duration": 1, "exit_code": 0, "folder": "/tmp", "machine": "m1", "session": "s1"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := ReadOshLegacy(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 500000000, time.UTC), events[0].Timestamp)
}

func TestReadOldOshIgnoresLinesWithoutEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.osh")
	content := `{"note": "not an event"}
{"event": {"timestamp": "2023-01-01T00:00:00+00:00", "command": "a", "duration": 1, "exit-code": 0, "folder": "/x", "machine": "m", "session": "s"}}
{"event": {"timestamp": "2023-01-02T00:00:00+00:00", "command": "b", "duration": 2, "exit-code": 1, "folder": "/x", "machine": "m", "session": "s"}}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := ReadOldOsh(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].Command) // newest first
	assert.Equal(t, "a", events[1].Command)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatZsh, FormatForPath("/x/history.zsh_history"))
	assert.Equal(t, FormatOshLegacy, FormatForPath("/x/history.osh_legacy"))
	assert.Equal(t, FormatUnknown, FormatForPath("/x/local.osh"))
}
