package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if c.Assets.IconMaxSize < 16 {
		return errors.New("assets.icon_max_size must be at least 16 pixels")
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LocalDataDir) == "" {
		return errors.New("paths.local_data_dir must be set (or set SSMT_LOCAL_DATA_DIR)")
	}
	vendor := c.Paths.Vendor
	if vendor == "" {
		return errors.New("paths.vendor must be set")
	}
	if strings.ContainsAny(vendor, `/\:`) || vendor == "." || vendor == ".." {
		return fmt.Errorf("paths.vendor %q must be a plain directory name", vendor)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	parsed, err := url.Parse(c.Catalog.BaseURL)
	if err != nil {
		return fmt.Errorf("catalog.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("catalog.base_url must use http or https, got %q", c.Catalog.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("catalog.base_url must include a host, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.LauncherID == "" {
		return errors.New("catalog.launcher_id must be set")
	}
	if _, err := language.Parse(c.Catalog.Language); err != nil {
		return fmt.Errorf("catalog.language %q is not a valid language tag: %w", c.Catalog.Language, err)
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		return errors.New("catalog.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
