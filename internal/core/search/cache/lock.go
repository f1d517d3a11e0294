// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by the non-blocking lock helpers when the lock is
// already held elsewhere.
var ErrWouldBlock = errors.New("cache: lock would block")

// lockedFile pairs an open file with the advisory lock held on it so the
// caller has a single handle to release.
type lockedFile struct {
	f *os.File
}

// lockExclusive opens path for read-write (creating it if absent) and blocks
// until an exclusive advisory lock is acquired. Used for every write to
// expiration.json, config.json, and page files.
func lockExclusive(path string) (*lockedFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}
	return &lockedFile{f: f}, nil
}

// tryLockExclusive attempts a non-blocking exclusive lock, returning
// ErrWouldBlock if another process holds any lock on path. Used by Update,
// whose contention policy is "never block a reader".
func tryLockExclusive(path string) (*lockedFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrWouldBlock
		}
		return nil, err
	}
	return &lockedFile{f: f}, nil
}

// tryLockShared attempts a non-blocking shared lock, used by
// getExpirationTime's read-only peek.
func tryLockShared(path string) (*lockedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrWouldBlock
		}
		return nil, err
	}
	return &lockedFile{f: f}, nil
}

func (l *lockedFile) close() error {
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	return l.f.Close()
}
