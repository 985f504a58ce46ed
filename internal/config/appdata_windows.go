//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// LocalDataDir returns %LOCALAPPDATA%, falling back to the LocalAppData known
// folder when the environment variable is missing.
func LocalDataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); v != "" {
		return v, nil
	}
	return windows.KnownFolderPath(windows.FOLDERID_LocalAppData, 0)
}
