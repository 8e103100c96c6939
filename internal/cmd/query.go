package cmd

import (
	"errors"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/merge"
	"github.com/dsmmcken/osh/internal/oshlog"
	"github.com/dsmmcken/osh/internal/output"
	"github.com/dsmmcken/osh/internal/source"
)

// openMergedStream refreshes the archive cache, selects every active
// source plus the cache, and returns the lazy newest-first merge over
// them. Callers must Close the merge (draining it fully also releases
// every source). Streaming matters here: the finder often stops
// reading early, and the reverse-scan format exists so that early exit
// never pays for the full history.
func openMergedStream(base string) (*merge.Merge, error) {
	if err := source.RefreshArchiveCache(base, lockTimeout()); err != nil {
		// A lock that cannot be acquired leaves the cache stale but
		// the query answerable; parse or corruption failures must
		// surface with a non-zero exit naming the offending file.
		if !errors.Is(err, oshlog.ErrLockTimeout) {
			return nil, err
		}
		output.Log.WithError(err).Warn("lock timed out refreshing archive cache")
	}

	paths, err := source.SelectSources(base)
	if err != nil {
		return nil, err
	}

	var sources []merge.Source
	for _, p := range paths {
		s, err := source.OpenReverse(p, lockTimeout())
		if err != nil {
			if errors.Is(err, oshlog.ErrLockTimeout) {
				// A locked-out source contributes an empty stream,
				// not a failed query.
				output.Log.WithError(err).WithField("path", p).Warn("lock timed out, skipping source")
				continue
			}
			for _, open := range sources {
				_ = open.Close()
			}
			return nil, err
		}
		sources = append(sources, s)
	}

	return merge.New(sources), nil
}

// readEventsFromBase drains openMergedStream into a slice, for the
// subcommands (report, bag-mode search) that aggregate over the whole
// stream anyway.
func readEventsFromBase(base string) ([]history.Event, error) {
	m, err := openMergedStream(base)
	if err != nil {
		return nil, err
	}

	var events []history.Event
	for m.Next() {
		events = append(events, m.Event())
	}
	if err := m.Err(); err != nil {
		_ = m.Close()
		return nil, err
	}
	if err := m.Close(); err != nil {
		return nil, err
	}
	return events, nil
}
