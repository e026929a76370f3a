//go:build linux

package render

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate reserves size bytes for the file using fallocate
func preallocate(f *os.File, size int64) error {
	if size <= 0 {
		return nil
	}
	return unix.Fallocate(int(f.Fd()), 0, 0, size)
}

// syncFile flushes file data (not metadata) to disk
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
