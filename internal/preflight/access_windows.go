//go:build windows

package preflight

import (
	"os"

	"golang.org/x/sys/windows"
)

func accessRead(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	_, err = windows.GetFileAttributes(p)
	return err
}

// accessReadWrite probes by creating and removing a temp file; Windows ACLs
// are not reflected in file attributes.
func accessReadWrite(path string) error {
	if err := accessRead(path); err != nil {
		return err
	}
	f, err := os.CreateTemp(path, ".ssmt-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
