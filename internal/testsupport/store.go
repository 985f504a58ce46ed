package testsupport

import (
	"testing"

	"ssmt/internal/config"
	"ssmt/internal/history"
)

// MustOpenHistory opens the history store configured on cfg and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
