package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for bundled and per-user data.
type Paths struct {
	ResourceDir  string `toml:"resource_dir"`
	LocalDataDir string `toml:"local_data_dir"`
	Vendor       string `toml:"vendor"`
}

// Catalog contains configuration for the remote game catalog API used to
// refresh backgrounds.
type Catalog struct {
	BaseURL        string `toml:"base_url"`
	LauncherID     string `toml:"launcher_id"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Assets contains configuration for icon and background handling.
type Assets struct {
	IconMaxSize int `toml:"icon_max_size"`
}

// History contains configuration for the asset replacement ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for the launcher backend.
//
// Configuration sections by subsystem:
//   - Paths: bundled resource directory, per-user data root, vendor namespace
//   - Catalog: remote background catalog endpoint and request settings
//   - Assets: icon normalization
//   - History: SQLite ledger of asset replacements
//   - Logging: log format, level, and optional log directory
type Config struct {
	Paths   Paths   `toml:"paths"`
	Catalog Catalog `toml:"catalog"`
	Assets  Assets  `toml:"assets"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ssmt.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// GlobalConfigDir returns the writable per-user directory that holds the
// bootstrapped games library (<local-data>/<Vendor>GlobalConfigs).
func (c *Config) GlobalConfigDir() string {
	return filepath.Join(c.Paths.LocalDataDir, c.Paths.Vendor+"GlobalConfigs")
}

// GlobalGamesDir returns the writable per-user games library.
func (c *Config) GlobalGamesDir() string {
	return filepath.Join(c.GlobalConfigDir(), "Games")
}

// AppConfigDir returns the per-user directory for launcher settings
// (<local-data>/<Vendor>Configs).
func (c *Config) AppConfigDir() string {
	return filepath.Join(c.Paths.LocalDataDir, c.Paths.Vendor+"Configs")
}

// SettingsPath returns the launcher settings document location.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.AppConfigDir(), "Settings.json")
}

// HistoryPath returns the asset history database location.
func (c *Config) HistoryPath() string {
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return filepath.Join(c.AppConfigDir(), "history.db")
}

// EnsureDirectories creates the per-user directories the launcher writes to.
// The global games library is not created here; bootstrap owns it so the
// first-run copy can tell a fresh install from an existing one.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.AppConfigDir()}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
