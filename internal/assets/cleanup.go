package assets

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"ssmt/internal/logging"
)

// CleanupResult lists what candidate cleanup removed and what it could not.
// Cleanup is best effort; failures never abort a replacement.
type CleanupResult struct {
	Removed []string       `json:"removed"`
	Errors  []CleanupError `json:"errors,omitempty"`
}

// Clean reports whether every existing candidate was removed.
func (r CleanupResult) Clean() bool { return len(r.Errors) == 0 }

// CleanupError pairs a file path with its removal error.
type CleanupError struct {
	Path  string
	Error error
}

// MarshalJSON renders the error as its message.
func (e CleanupError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Error != nil {
		msg = e.Error.Error()
	}
	return json.Marshal(struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}{e.Path, msg})
}

// removeCandidates deletes each named file in dir that exists.
func removeCandidates(dir string, names []string, logger *slog.Logger) CleanupResult {
	var result CleanupResult
	for _, name := range names {
		path := filepath.Join(dir, name)
		err := os.Remove(path)
		switch {
		case err == nil:
			result.Removed = append(result.Removed, path)
			logger.Debug("removed previous asset", logging.String("path", path))
		case errors.Is(err, fs.ErrNotExist):
		default:
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			logger.Warn("failed to remove previous asset",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "asset_cleanup_failed"),
				logging.String(logging.FieldErrorHint, "close programs holding the file and retry"),
				logging.String(logging.FieldImpact, "a stale background may remain next to the new one"),
			)
		}
	}
	return result
}
