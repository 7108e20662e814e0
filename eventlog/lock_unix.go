//go:build unix

package eventlog

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes an advisory flock on f
func lockFile(f *os.File, exclusive bool) error {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	return unix.Flock(int(f.Fd()), how)
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

func syncFile(f *os.File) error {
	return unix.Fsync(int(f.Fd()))
}
