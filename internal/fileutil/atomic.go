package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TempPath returns a unique hidden sibling path inside dir suitable for
// staging a file before it is renamed into place.
func TempPath(dir, base string) string {
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}

// WriteFileAtomic writes data to a temp file in path's directory and renames
// it over path. The temp file is removed on failure.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp := TempPath(dir, filepath.Base(path))
	if err := os.WriteFile(tmp, data, mode); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DisplayPath normalizes a filesystem path for UI consumers: the Windows
// extended-length prefix is stripped and separators become forward slashes.
func DisplayPath(path string) string {
	path = strings.TrimPrefix(path, `\\?\`)
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}
