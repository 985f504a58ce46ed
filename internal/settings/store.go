package settings

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"ssmt/internal/fileutil"
	"ssmt/internal/services"
)

// Store owns the Settings.json document and a cached copy of its contents.
// It is safe for concurrent use.
type Store struct {
	path string

	mu      sync.Mutex
	current Settings
	loaded  bool
}

// NewStore constructs a Store for the document at path.
func NewStore(path string) *Store {
	return &Store{path: path, current: Default()}
}

// Path returns the settings document location.
func (s *Store) Path() string { return s.path }

// Load reads the document, replacing the cached copy. A missing file yields
// defaults; fields absent from the file keep their defaults.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.set(Default())
			return Default(), nil
		}
		return Settings{}, services.Wrap(services.ErrIO, "settings", "read", s.path, err)
	}
	loaded := Default()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return Settings{}, services.Wrap(services.ErrParse, "settings", "parse", s.path, err)
	}
	s.set(loaded)
	return loaded, nil
}

// Save validates and writes value, then updates the cached copy.
func (s *Store) Save(value Settings) error {
	if err := value.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrIO, "settings", "encode", s.path, err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "settings", "write", s.path, err)
	}
	s.set(value)
	return nil
}

// Current returns the cached settings, loading them on first use.
func (s *Store) Current() (Settings, error) {
	s.mu.Lock()
	if s.loaded {
		cur := s.current
		s.mu.Unlock()
		return cur, nil
	}
	s.mu.Unlock()
	return s.Load()
}

func (s *Store) set(value Settings) {
	s.mu.Lock()
	s.current = value
	s.loaded = true
	s.mu.Unlock()
}
