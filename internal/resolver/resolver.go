package resolver

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ssmt/internal/logging"
	"ssmt/internal/services"
)

// LibraryDirName is the directory holding one subdirectory per game.
const LibraryDirName = "Games"

// Options configures candidate generation. Zero fields are filled from the
// running process: the working directory from os.Getwd, the executable
// directory from os.Executable, and the resource directory as
// <exe-dir>/resources.
type Options struct {
	ResourceDir string
	WorkingDir  string
	ExeDir      string
	Exists      func(path string) bool
	Logger      *slog.Logger
}

// Resolver locates bundled resources and the games library. It keeps no state
// between calls; every lookup probes the filesystem again.
type Resolver struct {
	resourceDir string
	workingDir  string
	exeDir      string
	exists      func(string) bool
	logger      *slog.Logger
}

// candidate derives one probe path from a hint.
type candidate func(hint string) string

// New constructs a Resolver.
func New(opts Options) *Resolver {
	r := &Resolver{
		resourceDir: opts.ResourceDir,
		workingDir:  opts.WorkingDir,
		exeDir:      opts.ExeDir,
		exists:      opts.Exists,
		logger:      logging.NewComponentLogger(opts.Logger, "resolver"),
	}
	if r.workingDir == "" {
		if wd, err := os.Getwd(); err == nil {
			r.workingDir = wd
		}
	}
	if r.exeDir == "" {
		if exe, err := os.Executable(); err == nil {
			r.exeDir = filepath.Dir(exe)
		} else {
			r.exeDir = r.workingDir
		}
	}
	if r.resourceDir == "" {
		r.resourceDir = filepath.Join(r.exeDir, "resources")
	}
	if r.exists == nil {
		r.exists = pathExists
	}
	return r
}

// ResourceDir returns the primary bundled resource directory.
func (r *Resolver) ResourceDir() string { return r.resourceDir }

// Resolve returns the first existing bundled resource for hint, probing the
// resource directory, then resources/<hint> and src-tauri/resources/<hint>
// relative to the working directory.
func (r *Resolver) Resolve(hint string) (string, error) {
	candidates := r.ResourceCandidates(hint)
	if path, ok := firstExisting(candidates, r.exists); ok {
		r.logger.Debug("resource resolved", logging.String("hint", hint), logging.String("path", path))
		return path, nil
	}
	return "", services.Wrap(
		services.ErrNotFound,
		"resolver",
		"resolve resource",
		fmt.Sprintf("resource %q not found; primary location %s", hint, candidates[0]),
		nil,
	)
}

// ResourceCandidates lists the probe order used by Resolve.
func (r *Resolver) ResourceCandidates(hint string) []string {
	return r.expand(hint, []candidate{
		func(h string) string { return filepath.Join(r.resourceDir, h) },
		func(h string) string { return filepath.Join(r.workingDir, "resources", h) },
		func(h string) string { return filepath.Join(r.workingDir, "src-tauri", "resources", h) },
	})
}

// ResolveLibrary returns the bundled games library. When no candidate exists
// the relative Games directory is returned anyway, made absolute against the
// working directory; it may not exist.
func (r *Resolver) ResolveLibrary() string {
	if path, ok := r.FindSource(); ok {
		return path
	}
	fallback := r.abs(LibraryDirName)
	r.logger.Debug("games library not found, using fallback", logging.String("path", fallback))
	return fallback
}

// FindSource returns the first existing library candidate, including the
// relative Games fallback. It reports false when none exists.
func (r *Resolver) FindSource() (string, bool) {
	return firstExisting(r.LibraryCandidates(), r.exists)
}

// LibraryCandidates lists the probe order used by ResolveLibrary and FindSource.
func (r *Resolver) LibraryCandidates() []string {
	return r.expand(LibraryDirName, []candidate{
		func(h string) string { return filepath.Join(r.resourceDir, h) },
		func(h string) string { return filepath.Join(r.exeDir, "resources", h) },
		func(h string) string { return filepath.Join(r.exeDir, h) },
		func(h string) string { return r.abs(h) },
	})
}

func (r *Resolver) expand(hint string, gens []candidate) []string {
	out := make([]string, 0, len(gens))
	for _, gen := range gens {
		out = append(out, r.abs(gen(hint)))
	}
	return out
}

func (r *Resolver) abs(path string) string {
	if !filepath.IsAbs(path) && r.workingDir != "" {
		path = filepath.Join(r.workingDir, path)
	}
	return filepath.Clean(path)
}

// firstExisting returns the first candidate that exists, with symlinks
// resolved. A candidate whose links cannot be resolved is returned as probed.
func firstExisting(candidates []string, exists func(string) bool) (string, bool) {
	for _, c := range candidates {
		if exists(c) {
			if resolved, err := filepath.EvalSymlinks(c); err == nil {
				return resolved, true
			}
			return c, true
		}
	}
	return "", false
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
