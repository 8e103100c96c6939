//go:build windows

package oshlog

import "os"

// tryLock is not implemented on Windows: this build does not attempt a
// LockFileEx-based equivalent of the POSIX flock used elsewhere. Every
// attempt fails immediately so callers observe a bounded ErrLockTimeout
// rather than hanging.
func tryLock(f *os.File, exclusive bool) (bool, error) {
	return false, nil
}

func unlock(f *os.File) error {
	return nil
}
