package library

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"ssmt/internal/fileutil"
	"ssmt/internal/logging"
	"ssmt/internal/services"
)

// SourceFinder locates the bundled games library, if one exists.
type SourceFinder interface {
	FindSource() (string, bool)
}

// BootstrapResult describes one EnsureGlobal call.
type BootstrapResult struct {
	Path    string               `json:"path"`
	Created bool                 `json:"created"`
	Source  string               `json:"source,omitempty"`
	Copied  int                  `json:"copied"`
	Skipped int                  `json:"skipped"`
	Errors  []fileutil.CopyError `json:"-"`
}

// Bootstrapper seeds the writable per-user library from the bundled one.
type Bootstrapper struct {
	target string
	finder SourceFinder
	logger *slog.Logger
}

// NewBootstrapper constructs a Bootstrapper that creates target from the
// library finder locates.
func NewBootstrapper(target string, finder SourceFinder, logger *slog.Logger) *Bootstrapper {
	return &Bootstrapper{
		target: target,
		finder: finder,
		logger: logging.NewComponentLogger(logger, "bootstrap"),
	}
}

// Target returns the global library path.
func (b *Bootstrapper) Target() string { return b.target }

// EnsureGlobal returns the global library path, creating and seeding it on
// first use. An existing target is returned untouched. Per-file copy failures
// are logged and reported in the result; only failing to create the target
// directory is an error.
func (b *Bootstrapper) EnsureGlobal(ctx context.Context) (BootstrapResult, error) {
	result := BootstrapResult{Path: b.target}
	logger := logging.WithContext(ctx, b.logger)

	if info, err := os.Stat(b.target); err == nil && info.IsDir() {
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(b.target), 0o755); err != nil {
		return result, services.Wrap(services.ErrIO, "bootstrap", "create global config directory", filepath.Dir(b.target), err)
	}
	if err := os.MkdirAll(b.target, 0o755); err != nil {
		return result, services.Wrap(services.ErrIO, "bootstrap", "create global games directory", b.target, err)
	}
	result.Created = true

	source, ok := "", false
	if b.finder != nil {
		source, ok = b.finder.FindSource()
	}
	if !ok {
		logger.Info("global library created empty; no bundled library found", logging.String("path", b.target))
		return result, nil
	}
	result.Source = source

	copied, err := fileutil.CopyTree(source, b.target)
	if err != nil {
		copied.Errors = append(copied.Errors, fileutil.CopyError{Path: source, Err: err})
	}
	result.Copied = copied.Copied
	result.Skipped = copied.Skipped
	result.Errors = copied.Errors

	if copied.Failed() {
		logging.WarnWithContext(logger, "global library seeded with errors", "bootstrap_partial",
			logging.String("source", source),
			logging.String("path", b.target),
			logging.Int("copied", result.Copied),
			logging.Int("failed", len(result.Errors)),
			logging.Error(copied.Err()),
			logging.String(logging.FieldErrorHint, "check permissions on the bundled Games directory"),
			logging.String(logging.FieldImpact, "some bundled games may be missing files"),
		)
		return result, nil
	}

	logger.Info("global library seeded",
		logging.String("source", source),
		logging.String("path", b.target),
		logging.Int("copied", result.Copied),
		logging.Int("skipped", result.Skipped),
	)
	return result, nil
}
