//go:build !unix && !windows

package eventlog

import "os"

func lockFile(*os.File, bool) error {
	return nil
}

func unlockFile(*os.File) error {
	return nil
}

func syncFile(f *os.File) error {
	return f.Sync()
}
