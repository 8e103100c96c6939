package oshlog

import (
	"fmt"
	"os"
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// ReverseIter lazily yields the frames of a .osh file from the tail
// backwards. The caller must call Close (directly, or by draining Next
// to completion) to release the lock and mapping.
type ReverseIter struct {
	f      *os.File
	data   []byte
	at     int
	err    error
	event  history.Event
	closed bool
}

// ReverseScan opens path under a shared advisory lock and returns an
// iterator over its frames, newest first. An empty or missing file
// yields zero events.
func ReverseScan(path string, timeout time.Duration) (*ReverseIter, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ReverseIter{closed: true}, nil
		}
		return nil, fmt.Errorf("oshlog: open %s: %w", path, err)
	}

	if err := acquireLock(f, false, timeout); err != nil {
		f.Close()
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		releaseLock(f)
		f.Close()
		return nil, fmt.Errorf("oshlog: stat %s: %w", path, err)
	}

	data, err := mapFile(f, info.Size(), false)
	if err != nil {
		releaseLock(f)
		f.Close()
		return nil, fmt.Errorf("oshlog: mmap %s: %w", path, err)
	}

	return &ReverseIter{f: f, data: data, at: len(data)}, nil
}

// Next advances the iterator and reports whether an event was
// produced. Call Event to retrieve it.
func (it *ReverseIter) Next() bool {
	if it.closed || it.err != nil || it.at <= 0 {
		if !it.closed {
			_ = it.Close()
		}
		return false
	}
	event, start, err := frameAt(it.data, it.at)
	if err != nil {
		it.err = err
		_ = it.Close()
		return false
	}
	it.event = event
	it.at = start
	return true
}

// Event returns the event produced by the most recent call to Next.
func (it *ReverseIter) Event() history.Event { return it.event }

// Err returns the first error encountered, if any. Callers should
// check this after Next returns false.
func (it *ReverseIter) Err() error { return it.err }

// Close releases the mapping and lock. It is safe to call multiple
// times and after the iterator has been fully drained.
func (it *ReverseIter) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	var err error
	if it.data != nil {
		err = unmapFile(it.data)
	}
	if it.f != nil {
		if lerr := releaseLock(it.f); lerr != nil && err == nil {
			err = lerr
		}
		if cerr := it.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
