//go:build !windows

package oshlog

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile memory-maps the full file, writable or read-only. A
// zero-length file maps to an empty (non-nil-checked-by-callers) slice
// since unix.Mmap rejects zero-length requests.
func mapFile(f *os.File, size int64, writable bool) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}

// syncFile is a no-op on unix: a MAP_SHARED mapping is backed directly
// by the file's page cache, so mutations written through the mapping
// are already visible to the next mapper without an explicit flush.
func syncFile(f *os.File, data []byte) error { return nil }
