package oshlog

import (
	"errors"
	"os"
	"time"
)

// ErrLockTimeout is returned when an advisory lock could not be
// acquired within the bounded wait. Inserts abandon on this error;
// readers return an empty stream and log to stderr rather than
// blocking forever.
var ErrLockTimeout = errors.New("oshlog: timed out waiting for advisory lock")

// DefaultLockTimeout bounds how long Insert/ReverseScan/ForwardWrite
// wait for their advisory lock before giving up with ErrLockTimeout.
// Locks are acquired with a poll loop rather than a blocking flock
// call, since Go has no portable way to cancel a blocked one.
const DefaultLockTimeout = 5 * time.Second

const lockPollInterval = 20 * time.Millisecond

// acquireLock takes an exclusive or shared advisory lock on f, retrying
// with a short poll interval until timeout elapses. The single
// non-blocking attempt it repeats, tryLock, is implemented per-platform
// in lock_unix.go / lock_windows.go.

func acquireLock(f *os.File, exclusive bool, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	deadline := time.Now().Add(timeout)
	for {
		ok, err := tryLock(f, exclusive)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}
		time.Sleep(lockPollInterval)
	}
}

func releaseLock(f *os.File) error {
	return unlock(f)
}
