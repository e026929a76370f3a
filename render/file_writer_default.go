//go:build !linux

package render

import "os"

// preallocate is a no-op on non-Linux systems
func preallocate(f *os.File, size int64) error {
	return nil
}

// syncFile flushes the file to disk
func syncFile(f *os.File) error {
	return f.Sync()
}
