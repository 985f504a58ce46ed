package preflight

import (
	"context"
	"path/filepath"
	"runtime"

	"ssmt/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// CatalogProbe is the slice of the catalog client used to test reachability.
type CatalogProbe interface {
	BackgroundURL(ctx context.Context, preset, kind string) (string, error)
}

// Options selects which checks RunAll performs.
type Options struct {
	// Catalog is probed unless nil or Offline is set.
	Catalog CatalogProbe
	Offline bool
	// GOOS overrides runtime.GOOS when choosing the file browser binary.
	GOOS string
}

// RunAll executes every applicable check for cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryReadable("Resource directory", cfg.Paths.ResourceDir),
		optional(CheckDirectoryReadable("Bundled library", filepath.Join(cfg.Paths.ResourceDir, "Games"))),
		CheckDirectoryAccess("Local data directory", cfg.Paths.LocalDataDir),
		CheckDirectoryAccess("App config directory", cfg.AppConfigDir()),
	}

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	results = append(results, optional(CheckFileBrowser(goos)))

	if opts.Catalog != nil && !opts.Offline {
		results = append(results, CheckCatalog(ctx, opts.Catalog))
	}
	return results
}

// Failed counts required checks that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed && !r.Optional {
			n++
		}
	}
	return n
}

func optional(r Result) Result {
	r.Optional = true
	return r
}
