package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	if c.Assets.IconMaxSize <= 0 {
		c.Assets.IconMaxSize = defaultIconMaxSize
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.ResourceDir = strings.TrimSpace(c.Paths.ResourceDir)
	if c.Paths.ResourceDir == "" {
		if value, ok := os.LookupEnv("SSMT_RESOURCE_DIR"); ok {
			c.Paths.ResourceDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.ResourceDir == "" {
		c.Paths.ResourceDir = defaultResourceDir()
	}
	if c.Paths.ResourceDir, err = expandPath(c.Paths.ResourceDir); err != nil {
		return fmt.Errorf("paths.resource_dir: %w", err)
	}

	c.Paths.LocalDataDir = strings.TrimSpace(c.Paths.LocalDataDir)
	if c.Paths.LocalDataDir == "" {
		if value, ok := os.LookupEnv("SSMT_LOCAL_DATA_DIR"); ok {
			c.Paths.LocalDataDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.LocalDataDir == "" {
		dir, err := LocalDataDir()
		if err != nil {
			return fmt.Errorf("paths.local_data_dir: %w", err)
		}
		c.Paths.LocalDataDir = dir
	}
	if c.Paths.LocalDataDir, err = expandPath(c.Paths.LocalDataDir); err != nil {
		return fmt.Errorf("paths.local_data_dir: %w", err)
	}

	c.Paths.Vendor = strings.TrimSpace(c.Paths.Vendor)
	if c.Paths.Vendor == "" {
		c.Paths.Vendor = defaultVendor
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.BaseURL = strings.TrimSpace(c.Catalog.BaseURL)
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	c.Catalog.LauncherID = strings.TrimSpace(c.Catalog.LauncherID)
	if c.Catalog.LauncherID == "" {
		c.Catalog.LauncherID = defaultCatalogLauncherID
	}
	c.Catalog.Language = strings.ToLower(strings.TrimSpace(c.Catalog.Language))
	if c.Catalog.Language == "" {
		c.Catalog.Language = defaultCatalogLanguage
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = defaultCatalogTimeout
	}
}

func (c *Config) normalizeHistory() error {
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		return nil
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	if c.Logging.Dir != "" {
		var err error
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}

// defaultResourceDir mirrors an installed layout where bundled resources sit
// next to the executable.
func defaultResourceDir() string {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		return "resources"
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}
