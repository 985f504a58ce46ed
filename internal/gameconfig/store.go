package gameconfig

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"ssmt/internal/fileutil"
	"ssmt/internal/logging"
	"ssmt/internal/services"
	"ssmt/internal/textutil"
)

// FileName is the per-game configuration document.
const FileName = "Config.json"

// Store reads and writes Config.json under a library root.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore constructs a Store rooted at the games library.
func NewStore(root string, logger *slog.Logger) *Store {
	return &Store{root: root, logger: logging.NewComponentLogger(logger, "gameconfig")}
}

// Root returns the library root.
func (s *Store) Root() string { return s.root }

// Dir returns the validated game directory for name.
func (s *Store) Dir(name string) (string, error) {
	if err := textutil.ValidateGameName(name); err != nil {
		return "", services.Wrap(services.ErrUnsupported, "gameconfig", "validate name", "", err)
	}
	return filepath.Join(s.root, name), nil
}

// Path returns the Config.json location for name.
func (s *Store) Path(name string) (string, error) {
	dir, err := s.Dir(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Exists reports whether the game directory exists.
func (s *Store) Exists(name string) bool {
	dir, err := s.Dir(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// Load returns the stored config for name. A missing file yields defaults.
func (s *Store) Load(name string) (Config, error) {
	path, err := s.Path(name)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, services.Wrap(services.ErrIO, "gameconfig", "read config", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, services.Wrap(services.ErrParse, "gameconfig", "parse config", path, err)
	}
	return cfg, nil
}

// Save writes cfg for name, creating the game directory when needed. The
// previous file is fully replaced.
func (s *Store) Save(name string, cfg Config) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	return s.write(path, cfg)
}

// Create makes the game directory for name and writes cfg into it.
func (s *Store) Create(name string, cfg Config) error {
	dir, err := s.Dir(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "gameconfig", "create game directory", dir, err)
	}
	if err := s.write(filepath.Join(dir, FileName), cfg); err != nil {
		return err
	}
	s.logger.Info("game created", logging.String(logging.FieldGame, name), logging.String("path", dir))
	return nil
}

// Delete removes the game directory and everything in it. Deleting a missing
// game succeeds.
func (s *Store) Delete(name string) error {
	dir, err := s.Dir(name)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return services.Wrap(services.ErrIO, "gameconfig", "delete game directory", dir, err)
	}
	s.logger.Info("game deleted", logging.String(logging.FieldGame, name), logging.String("path", dir))
	return nil
}

// Update loads the config for name, applies fn, and saves the result.
func (s *Store) Update(name string, fn func(*Config)) (Config, error) {
	cfg, err := s.Load(name)
	if err != nil {
		return Config{}, err
	}
	fn(&cfg)
	if err := s.Save(name, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *Store) write(path string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return services.Wrap(services.ErrIO, "gameconfig", "encode config", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "gameconfig", "write config", path, err)
	}
	return nil
}
