// Package atomicfile writes files through a temp file that is renamed over
// the target, so readers never observe a partial write.
package atomicfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteFile creates the parent directories of path, calls write with a temp
// file in the same directory, syncs it, and renames it over path. On any
// error the temp file is removed and path is left untouched.
func WriteFile(path string, write func(w io.Writer) error) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		_ = os.Remove(tmpName)
	}()

	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		slog.Warn("sync temp file", "path", tmpName, "error", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
