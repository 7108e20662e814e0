package eventlog

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sibexico/pagesim/paging"
)

// ExportFile writes events to path under an exclusive file lock and
// syncs the file before returning
func ExportFile(path string, events []paging.Event, c Compression) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return paging.ErrExport("ExportFile", fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = paging.ErrExport("ExportFile", cerr)
		}
	}()

	if err := lockFile(file, true); err != nil {
		return paging.ErrExport("ExportFile", fmt.Errorf("failed to lock %s: %w", path, err))
	}
	defer unlockFile(file)

	// Truncate only once the lock is held
	if err := file.Truncate(0); err != nil {
		return paging.ErrExport("ExportFile", err)
	}

	w := bufio.NewWriter(file)
	if err := Encode(w, events, c); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return paging.ErrExport("ExportFile", err)
	}

	if err := syncFile(file); err != nil {
		return paging.ErrExport("ExportFile", fmt.Errorf("failed to sync %s: %w", path, err))
	}
	return nil
}

// ImportFile reads events previously written by ExportFile
func ImportFile(path string) ([]paging.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if err := lockFile(file, false); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer unlockFile(file)

	return Decode(bufio.NewReader(file))
}
