package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyError records a single entry that could not be copied.
type CopyError struct {
	Path string
	Err  error
}

func (e CopyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e CopyError) Unwrap() error { return e.Err }

// CopyResult summarizes a CopyTree run.
type CopyResult struct {
	Copied  int
	Skipped int
	Dirs    int
	Errors  []CopyError
}

// Failed reports whether any entry could not be copied.
func (r CopyResult) Failed() bool { return len(r.Errors) > 0 }

// Err joins the recorded entry errors, or returns nil.
func (r CopyResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// CopyTree mirrors src into dst. Directories are created as needed. A file is
// copied only when its destination does not exist yet; existing destination
// files are never overwritten, regardless of content. Symlinks are followed:
// linked files are copied by content and linked directories are mirrored as
// real directories. Per-entry failures, including dangling links and link
// cycles, are collected in the result and the walk continues. Only failure to
// create dst itself or to read src's root is returned as an error.
func CopyTree(src, dst string) (CopyResult, error) {
	var result CopyResult

	info, err := os.Stat(src)
	if err != nil {
		return result, fmt.Errorf("stat source %s: %w", src, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("source %s is not a directory", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return result, fmt.Errorf("create %s: %w", dst, err)
	}

	visited := map[string]bool{}
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		visited[resolved] = true
	}
	if err := copyTree(src, dst, &result, visited); err != nil {
		return result, fmt.Errorf("walk %s: %w", src, err)
	}
	return result, nil
}

func copyTree(src, dst string, result *CopyResult, visited map[string]bool) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == src {
				return err
			}
			result.Errors = append(result.Errors, CopyError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			result.Errors = append(result.Errors, CopyError{Path: path, Err: err})
			return nil
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				result.Errors = append(result.Errors, CopyError{Path: target, Err: err})
				return filepath.SkipDir
			}
			result.Dirs++
			return nil
		}

		// WalkDir reports symlinks without following them.
		fi, err := os.Stat(path)
		if err != nil {
			result.Errors = append(result.Errors, CopyError{Path: path, Err: err})
			return nil
		}
		if fi.IsDir() {
			copyLinkedDir(path, target, result, visited)
			return nil
		}
		if !fi.Mode().IsRegular() {
			result.Errors = append(result.Errors, CopyError{Path: path, Err: fmt.Errorf("unsupported file type %s", fi.Mode().Type())})
			return nil
		}

		if _, err := os.Lstat(target); err == nil {
			result.Skipped++
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			result.Errors = append(result.Errors, CopyError{Path: target, Err: err})
			return nil
		}

		if err := CopyFileMode(path, target, fi.Mode().Perm()); err != nil {
			result.Errors = append(result.Errors, CopyError{Path: target, Err: err})
			return nil
		}
		result.Copied++
		return nil
	})
}

func copyLinkedDir(path, target string, result *CopyResult, visited map[string]bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		result.Errors = append(result.Errors, CopyError{Path: path, Err: err})
		return
	}
	if visited[resolved] {
		result.Errors = append(result.Errors, CopyError{Path: path, Err: fmt.Errorf("symlink cycle through %s", resolved)})
		return
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		result.Errors = append(result.Errors, CopyError{Path: target, Err: err})
		return
	}
	result.Dirs++
	visited[resolved] = true
	defer delete(visited, resolved)
	if err := copyTree(resolved, target, result, visited); err != nil {
		result.Errors = append(result.Errors, CopyError{Path: path, Err: err})
	}
}
