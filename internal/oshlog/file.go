// Package oshlog implements the primary ".osh" log: a length-prefixed,
// append-only binary file kept in non-decreasing timestamp order
// within a single file. Cross-file ordering is restored by the merge
// reader (internal/merge), not by this package.
package oshlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// Append writes one frame to the end of an already-open file. It does
// not check ordering and does not acquire a lock: callers that need
// ordering or locking use Insert, or hold their own lock (as
// ForwardWrite does internally). A single os.File.Write call is used
// so the write has a reasonable chance of being atomic on POSIX append
// mode.
func Append(f *os.File, e history.Event) error {
	frame, err := encodeFrame(e)
	if errors.Is(err, history.ErrOversizedEvent) {
		return nil // silently dropped; oversized events never make the log
	}
	if err != nil {
		return err
	}
	_, err = f.Write(frame)
	return err
}

// Insert performs the ordered insert used by the shell append path: it
// scans from the tail to find the first frame whose timestamp is <=
// e.Timestamp, then shifts the suffix to make room. If path does not
// exist or is empty, it is initialized with a single-frame write.
func Insert(path string, e history.Event, timeout time.Duration) error {
	frame, err := encodeFrame(e)
	if errors.Is(err, history.ErrOversizedEvent) {
		return nil // silently dropped; oversized events never make the log
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("oshlog: creating parent dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("oshlog: open %s: %w", path, err)
	}
	defer f.Close()

	if err := acquireLock(f, true, timeout); err != nil {
		return err
	}
	defer releaseLock(f)

	// Size must be read under the lock: another inserter may have
	// grown the file between open and acquire, and mapping or
	// truncating against a stale size would clobber its frames.
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("oshlog: stat %s: %w", path, err)
	}
	oldSize := info.Size()
	if oldSize == 0 {
		_, err = f.Write(frame)
		return err
	}

	data, err := mapFile(f, oldSize, true)
	if err != nil {
		return fmt.Errorf("oshlog: mmap %s: %w", path, err)
	}

	insertAt := len(data)
	for insertAt > 0 {
		entry, start, ferr := frameAt(data, insertAt)
		if ferr != nil {
			_ = unmapFile(data)
			return ferr
		}
		if !entry.Timestamp.After(e.Timestamp) {
			break
		}
		insertAt = start
	}

	suffix := append([]byte(nil), data[insertAt:]...)
	if err := unmapFile(data); err != nil {
		return fmt.Errorf("oshlog: munmap %s: %w", path, err)
	}

	newSize := oldSize + int64(len(frame))
	if err := f.Truncate(newSize); err != nil {
		return fmt.Errorf("oshlog: resize %s: %w", path, err)
	}

	data, err = mapFile(f, newSize, true)
	if err != nil {
		return fmt.Errorf("oshlog: remap %s: %w", path, err)
	}
	defer unmapFile(data)

	if len(suffix) > 0 {
		copy(data[insertAt+len(frame):], suffix)
	}
	copy(data[insertAt:insertAt+len(frame)], frame)

	return syncFile(f, data)
}

// ForwardWrite writes an entire sequence of events, oldest to newest,
// truncating the file. Used to rebuild the archive cache and to write
// the output of `convert`.
func ForwardWrite(path string, events []history.Event, timeout time.Duration) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("oshlog: creating parent dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("oshlog: opening %s: %w", path, err)
	}
	defer f.Close()

	if err := acquireLock(f, true, timeout); err != nil {
		return err
	}
	defer releaseLock(f)

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("oshlog: truncating %s: %w", path, err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}

	for _, e := range events {
		if err := Append(f, e); err != nil {
			return err
		}
	}
	return nil
}
