//go:build windows

package oshlog

import (
	"io"
	"os"
)

// mapFile falls back to reading the whole file into memory on Windows,
// since this package avoids a cgo/syscall dependency on the Win32
// file-mapping APIs. Callers must call syncFile to persist mutations;
// see lock_windows.go for why this path is inherently best-effort.
func mapFile(f *os.File, size int64, writable bool) ([]byte, error) {
	data := make([]byte, size)
	if size > 0 {
		if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
			return nil, err
		}
	}
	return data, nil
}

func unmapFile(data []byte) error { return nil }

func syncFile(f *os.File, data []byte) error {
	if _, err := f.WriteAt(data, 0); err != nil {
		return err
	}
	return f.Truncate(int64(len(data)))
}
