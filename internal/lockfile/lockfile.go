// Package lockfile guards against concurrent runs with a marker file plus
// an advisory flock on it.
package lockfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrAlreadyRunning reports that the lock is held by another instance.
var ErrAlreadyRunning = errors.New("another instance is already running")

// ContentionError reports why the lock could not be taken. Stale means the
// marker file exists but nothing holds its flock, which points at a run
// that died without cleaning up; the file is never removed automatically.
type ContentionError struct {
	Path  string
	Stale bool
}

func (e *ContentionError) Error() string {
	if e.Stale {
		return fmt.Sprintf("lock %s: marker exists but is not held; remove it manually if no other instance is running", e.Path)
	}
	return fmt.Sprintf("lock %s: held by another instance", e.Path)
}

func (e *ContentionError) Unwrap() error { return ErrAlreadyRunning }

// Lock is a held single-instance lock.
type Lock struct {
	path string
	f    *os.File
}

// Acquire takes the single-instance lock at path: the marker file must not
// already exist, and the flock on it must be free. The owner PID is written
// into the marker for operators.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, &ContentionError{Path: path, Stale: probeStale(path)}
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		os.Remove(path)
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, &ContentionError{Path: path}
		}
		return nil, fmt.Errorf("lock %s: flock: %w", path, err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())

	return &Lock{path: path, f: f}, nil
}

// Release drops the lock: the marker is removed first, then the descriptor
// closed, which releases the flock. Safe to call more than once.
func (l *Lock) Release() error {
	if l.f == nil {
		return nil
	}
	err := os.Remove(l.path)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}

// probeStale reports whether the existing marker's flock is free, meaning
// its owner is gone. The probe lock is dropped immediately and the file is
// left in place.
func probeStale(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return false
	}
	unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return true
}
