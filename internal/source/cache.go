package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/legacy"
	"github.com/dsmmcken/osh/internal/merge"
	"github.com/dsmmcken/osh/internal/oshlog"
)

// OpenReverse opens path as a merge.Source, dispatching on its
// extension: ".osh" gets a lazy oshlog.ReverseIter, the two legacy
// formats are read in full and wrapped as a merge.SliceSource (they
// are already newest-first once parsed).
func OpenReverse(path string, timeout time.Duration) (merge.Source, error) {
	switch legacy.FormatForPath(path) {
	case legacy.FormatZsh:
		events, err := legacy.ReadZsh(path)
		if err != nil {
			return nil, err
		}
		return merge.NewSliceSource(events), nil
	case legacy.FormatOshLegacy:
		events, err := legacy.ReadOshLegacy(path)
		if err != nil {
			return nil, err
		}
		return merge.NewSliceSource(events), nil
	default:
		if strings.HasSuffix(path, ".osh") {
			return oshlog.ReverseScan(path, timeout)
		}
		return nil, fmt.Errorf("source: unrecognized extension for %s", path)
	}
}

// RefreshArchiveCache rebuilds base/archived.osh from the archive
// sources if any archive source's mtime is newer than the cache (or
// the cache does not exist). If no archive sources exist at all, the
// cache is deleted.
func RefreshArchiveCache(base string, timeout time.Duration) error {
	archiveSources, err := DiscoverArchive(base)
	if err != nil {
		return err
	}
	cachePath := filepath.Join(base, CacheFile)

	if len(archiveSources) == 0 {
		err := os.Remove(cachePath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("source: removing stale %s: %w", cachePath, err)
		}
		return nil
	}

	archiveMtime, err := maxMtime(archiveSources)
	if err != nil {
		return err
	}

	cacheInfo, err := os.Stat(cachePath)
	if err == nil && !cacheInfo.ModTime().Before(archiveMtime) {
		return nil // cache is fresh
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("source: stat %s: %w", cachePath, err)
	}

	forward, err := mergeSourcesForward(archiveSources, timeout)
	if err != nil {
		return err
	}
	return oshlog.ForwardWrite(cachePath, forward, timeout)
}

func maxMtime(paths []string) (time.Time, error) {
	var max time.Time
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("source: stat %s: %w", p, err)
		}
		if info.ModTime().After(max) {
			max = info.ModTime()
		}
	}
	return max, nil
}

// mergeSourcesForward reads every path in paths, merges them
// newest-first, then reverses the result to oldest-first for a
// forward_write-style rewrite.
func mergeSourcesForward(paths []string, timeout time.Duration) ([]history.Event, error) {
	var sources []merge.Source
	for _, p := range paths {
		s, err := OpenReverse(p, timeout)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	m := merge.New(sources)
	var newestFirst []history.Event
	for m.Next() {
		newestFirst = append(newestFirst, m.Event())
	}
	if err := m.Err(); err != nil {
		_ = m.Close()
		return nil, err
	}
	if err := m.Close(); err != nil {
		return nil, err
	}

	forward := make([]history.Event, len(newestFirst))
	for i, e := range newestFirst {
		forward[len(newestFirst)-1-i] = e
	}
	return forward, nil
}

// SelectSources returns the set of paths the merge reader should read
// for a query: every active source, plus the archive cache if it
// exists.
func SelectSources(base string) ([]string, error) {
	active, err := DiscoverActive(base)
	if err != nil {
		return nil, err
	}

	cachePath := filepath.Join(base, CacheFile)
	if _, err := os.Stat(cachePath); err == nil {
		active = append(active, cachePath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("source: stat %s: %w", cachePath, err)
	}
	return active, nil
}
