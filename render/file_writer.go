package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// writeArtifact persists data at path. The bytes go to a temporary file in
// the same directory first, so a failed write never leaves a truncated image
// behind. The directory must already exist.
func writeArtifact(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if perr := preallocate(tmp, int64(len(data))); perr != nil {
		// Non-fatal - the write below still extends the file
		log.Printf("[WARNING] Failed to preallocate %s: %v", tmpPath, perr)
	}

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = syncFile(tmp); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to chmod file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}
	return nil
}
