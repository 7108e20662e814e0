//go:build windows

package eventlog

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockFile locks the first byte of f, which is enough to serialize exporters
func lockFile(f *os.File, exclusive bool) error {
	var flags uint32
	if exclusive {
		flags = windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	return windows.LockFileEx(windows.Handle(f.Fd()), flags, 0, 1, 0, new(windows.Overlapped))
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, new(windows.Overlapped))
}

func syncFile(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
