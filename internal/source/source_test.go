package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/oshlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOsh(t *testing.T, path string, events []history.Event) {
	t.Helper()
	require.NoError(t, oshlog.ForwardWrite(path, events, time.Second))
}

func TestDiscoverFindsRecognizedExtensions(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "archive", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "archive", "a.zsh_history"), []byte(": 1:0;x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "archive", "nested", "b.osh_legacy"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "archive", "ignored.txt"), []byte("nope"), 0o644))

	got, err := DiscoverArchive(base)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDiscoverMissingDirIsEmpty(t *testing.T) {
	base := t.TempDir()
	got, err := DiscoverArchive(base)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRefreshArchiveCacheBuildsAndIsIdempotent(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "archive"), 0o755))
	writeOsh(t, filepath.Join(base, "archive", "old.osh"), []history.Event{
		{Timestamp: time.Unix(1, 0).UTC(), Command: "a"},
		{Timestamp: time.Unix(2, 0).UTC(), Command: "b"},
	})

	require.NoError(t, RefreshArchiveCache(base, time.Second))

	cachePath := filepath.Join(base, CacheFile)
	first, err := os.ReadFile(cachePath)
	require.NoError(t, err)

	// Rebuilding with no source changes must be a byte-identical no-op.
	require.NoError(t, RefreshArchiveCache(base, time.Second))
	second, err := os.ReadFile(cachePath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRefreshArchiveCacheDeletedWhenNoSources(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "archive"), 0o755))
	writeOsh(t, filepath.Join(base, "archive", "old.osh"), []history.Event{
		{Timestamp: time.Unix(1, 0).UTC(), Command: "a"},
	})
	require.NoError(t, RefreshArchiveCache(base, time.Second))

	require.NoError(t, os.Remove(filepath.Join(base, "archive", "old.osh")))
	require.NoError(t, RefreshArchiveCache(base, time.Second))

	_, err := os.Stat(filepath.Join(base, CacheFile))
	assert.True(t, os.IsNotExist(err))
}

func TestSelectSourcesIncludesActiveAndCache(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "active"), 0o755))
	writeOsh(t, filepath.Join(base, "active", "m1.osh"), []history.Event{
		{Timestamp: time.Unix(1, 0).UTC(), Command: "a"},
	})
	require.NoError(t, os.MkdirAll(filepath.Join(base, "archive"), 0o755))
	writeOsh(t, filepath.Join(base, "archive", "old.osh"), []history.Event{
		{Timestamp: time.Unix(0, 0).UTC(), Command: "z"},
	})
	require.NoError(t, RefreshArchiveCache(base, time.Second))

	got, err := SelectSources(base)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
