package testsupport

import (
	"path/filepath"
	"testing"

	"ssmt/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The bundled resource directory is <base>/resources and per-user data lives
// under <base>/local.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ResourceDir = filepath.Join(base, "resources")
	cfgVal.Paths.LocalDataDir = filepath.Join(base, "local")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "local", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalogURL points the remote catalog at url, typically an httptest server.
func WithCatalogURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BaseURL = url
	}
}

// WithHistoryDisabled turns off the asset history ledger.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithIconMaxSize overrides the icon downscale bound.
func WithIconMaxSize(size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Assets.IconMaxSize = size
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ResourceDir)
}
