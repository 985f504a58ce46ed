//go:build !windows

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// LocalDataDir returns the platform's per-user local application data
// directory: ~/Library/Application Support on macOS, $XDG_DATA_HOME or
// ~/.local/share elsewhere.
func LocalDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return base, nil
	}
	return filepath.Join(home, ".local", "share"), nil
}
