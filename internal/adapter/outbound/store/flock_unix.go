//go:build !windows

package store

import "syscall"

// flockLock takes the exclusive lock guarding the data file, blocking until
// any other peopledesk process releases it (Unix flock).
func flockLock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX)
}

// flockUnlock releases the data-file lock (Unix flock).
func flockUnlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
