package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"ssmt/internal/catalog"
	"ssmt/internal/services"
	"ssmt/internal/shell"
)

const catalogProbePreset = "GIMI"

// CheckCatalog asks the remote catalog for a known preset's background. A
// single attempt with a 10-second limit.
func CheckCatalog(ctx context.Context, probe CatalogProbe) Result {
	const name = "Remote catalog"

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := probe.BackgroundURL(checkCtx, catalogProbePreset, catalog.KindImage); err != nil {
		return Result{Name: name, Detail: summarizeCatalogError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if r, ok := statDirectory(name, path); !ok {
		return r
	}
	if err := accessReadWrite(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	if r, ok := statDirectory(name, path); !ok {
		return r
	}
	if err := accessRead(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckFileBrowser reports whether the program used to open game
// directories is on PATH.
func CheckFileBrowser(goos string) Result {
	const name = "File browser"
	program, _ := shell.Command(goos, "")
	if _, err := exec.LookPath(program); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", program)}
	}
	return Result{Name: name, Passed: true, Detail: program}
}

func statDirectory(name, path string) (Result, bool) {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}, false
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}, false
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}, false
	}
	return Result{}, true
}

func summarizeCatalogError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, services.ErrTimeout):
		return "request timed out (catalog unresponsive)"
	case errors.Is(err, services.ErrParse):
		return "unexpected response shape: " + err.Error()
	default:
		return err.Error()
	}
}
