// Package maintain implements the housekeeping operations run against
// a base directory: order verification, format migration, and
// aggregate reporting.
package maintain

import (
	"errors"
	"fmt"
	"time"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/source"
)

// ErrOutOfOrder is returned by CheckFile when a source's timestamps do
// not increase monotonically from oldest to newest.
var ErrOutOfOrder = errors.New("maintain: timestamps out of order")

// FileStatus is the per-source result of a check run.
type FileStatus struct {
	Path string
	Err  error
}

// CheckFile opens path for reverse scanning and verifies that
// timestamps never increase as the scan moves from newest to oldest
// (equivalently: the file is non-decreasing read forward).
func CheckFile(path string, timeout time.Duration) error {
	src, err := source.OpenReverse(path, timeout)
	if err != nil {
		return err
	}
	defer src.Close()

	var prev *history.Event
	for src.Next() {
		e := src.Event()
		if prev != nil && e.Timestamp.After(prev.Timestamp) {
			return fmt.Errorf("%w: %s: %s comes after %s reading backwards", ErrOutOfOrder, path, e.Timestamp, prev.Timestamp)
		}
		cp := e
		prev = &cp
	}
	return src.Err()
}

// CheckBase runs CheckFile over every active and archive source under
// base, returning one FileStatus per source.
func CheckBase(base string, timeout time.Duration) ([]FileStatus, error) {
	active, err := source.DiscoverActive(base)
	if err != nil {
		return nil, err
	}
	archive, err := source.DiscoverArchive(base)
	if err != nil {
		return nil, err
	}

	paths := append(active, archive...)
	results := make([]FileStatus, 0, len(paths))
	for _, p := range paths {
		results = append(results, FileStatus{Path: p, Err: CheckFile(p, timeout)})
	}
	return results, nil
}
