package launcher

import (
	"context"

	"ssmt/internal/assets"
	"ssmt/internal/gameconfig"
	"ssmt/internal/history"
	"ssmt/internal/library"
	"ssmt/internal/logging"
	"ssmt/internal/preflight"
	"ssmt/internal/services"
	"ssmt/internal/settings"
)

// ResolveLibrary returns the bundled games library path. It never fails; the
// returned path may not exist.
func (s *Service) ResolveLibrary(ctx context.Context) string {
	_, logger := s.begin(ctx, "resolve_library", "")
	path := s.resolver.ResolveLibrary()
	logger.Debug("bundled library resolved", logging.String("path", path))
	return path
}

// ResolveResource locates a bundled resource by relative hint.
func (s *Service) ResolveResource(ctx context.Context, hint string) (string, error) {
	_, logger := s.begin(ctx, "resolve_resource", "")
	path, err := s.resolver.Resolve(hint)
	if err != nil {
		return "", err
	}
	logger.Debug("resource resolved", logging.String("hint", hint), logging.String("path", path))
	return path, nil
}

// EnsureGlobalLibrary creates and seeds the per-user library if it is missing.
func (s *Service) EnsureGlobalLibrary(ctx context.Context) (library.BootstrapResult, error) {
	ctx, _ = s.begin(ctx, "ensure_global_library", "")
	s.bootstrapMu.Lock()
	defer s.bootstrapMu.Unlock()
	return s.bootstrap.EnsureGlobal(ctx)
}

// ScanGames lists the games in the per-user global library, seeding it from
// the bundled library on first use. It does not read the resolved bundled
// library directly; ScanBundled does. SetVisibility writes to the same
// global library.
func (s *Service) ScanGames(ctx context.Context) ([]library.Game, error) {
	ctx, _ = s.begin(ctx, "scan_games", "")
	root, err := s.ensureLibrary(ctx)
	if err != nil {
		return nil, err
	}
	return s.scanner.Scan(ctx, root)
}

// ScanBundled lists the games in the bundled library.
func (s *Service) ScanBundled(ctx context.Context) ([]library.Game, error) {
	ctx, _ = s.begin(ctx, "scan_bundled", "")
	return s.scanner.Scan(ctx, s.resolver.ResolveLibrary())
}

// SetVisibility records whether name is shown in the sidebar.
func (s *Service) SetVisibility(ctx context.Context, name string, visible bool) error {
	ctx, logger := s.begin(ctx, "set_visibility", name)
	root, err := s.ensureLibrary(ctx)
	if err != nil {
		return err
	}
	s.libraryMu.Lock()
	defer s.libraryMu.Unlock()
	if err := library.SetVisibility(root, name, visible); err != nil {
		return err
	}
	logger.Info("visibility updated", logging.Bool("visible", visible))
	return nil
}

// GameDir returns the per-user directory for name.
func (s *Service) GameDir(name string) (string, error) {
	return s.configs.Dir(name)
}

// GameExists reports whether name has a directory in the per-user library.
func (s *Service) GameExists(ctx context.Context, name string) bool {
	ctx, _ = s.begin(ctx, "game_exists", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return false
	}
	return s.configs.Exists(name)
}

// LoadConfig returns the stored config for name, or defaults.
func (s *Service) LoadConfig(ctx context.Context, name string) (gameconfig.Config, error) {
	ctx, _ = s.begin(ctx, "load_config", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return gameconfig.Config{}, err
	}
	return s.configs.Load(name)
}

// SaveConfig replaces the stored config for name.
func (s *Service) SaveConfig(ctx context.Context, name string, cfg gameconfig.Config) error {
	ctx, _ = s.begin(ctx, "save_config", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return err
	}
	defer s.games.lock(name)()
	return s.configs.Save(name, cfg)
}

// SetPreset updates only the game's preset.
func (s *Service) SetPreset(ctx context.Context, name, preset string) (gameconfig.Config, error) {
	ctx, _ = s.begin(ctx, "set_preset", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return gameconfig.Config{}, err
	}
	defer s.games.lock(name)()
	return s.configs.Update(name, func(cfg *gameconfig.Config) {
		cfg.Basic.GamePreset = preset
	})
}

// CreateGame creates the game directory for name with cfg.
func (s *Service) CreateGame(ctx context.Context, name string, cfg gameconfig.Config) error {
	ctx, _ = s.begin(ctx, "create_game", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return err
	}
	defer s.games.lock(name)()
	return s.configs.Create(name, cfg)
}

// DeleteGame removes the game directory for name and everything inside it.
func (s *Service) DeleteGame(ctx context.Context, name string) error {
	ctx, _ = s.begin(ctx, "delete_game", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return err
	}
	defer s.games.lock(name)()
	return s.configs.Delete(name)
}

// SetIcon installs source as the game's icon.
func (s *Service) SetIcon(ctx context.Context, name, source string) (assets.Outcome, error) {
	ctx, _ = s.begin(ctx, "set_icon", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return assets.Outcome{}, err
	}
	defer s.games.lock(name)()
	return s.assets.SetIcon(ctx, name, source)
}

// SetBackground installs source as the game's background of kind.
func (s *Service) SetBackground(ctx context.Context, name, source, kind string) (assets.Outcome, error) {
	ctx, _ = s.begin(ctx, "set_background", name)
	if err := assets.ValidateKind(kind); err != nil {
		return assets.Outcome{}, err
	}
	if _, err := s.ensureLibrary(ctx); err != nil {
		return assets.Outcome{}, err
	}
	defer s.games.lock(name)()
	return s.assets.SetBackground(ctx, name, source, kind)
}

// UpdateBackgroundFromRemote downloads the catalog background for name. An
// empty preset uses the preset stored in the game's config.
func (s *Service) UpdateBackgroundFromRemote(ctx context.Context, name, preset, kind string) (assets.Outcome, error) {
	ctx, logger := s.begin(ctx, "update_background", name)
	if err := assets.ValidateKind(kind); err != nil {
		return assets.Outcome{}, err
	}
	if _, err := s.ensureLibrary(ctx); err != nil {
		return assets.Outcome{}, err
	}
	defer s.games.lock(name)()
	if preset == "" {
		cfg, err := s.configs.Load(name)
		if err != nil {
			return assets.Outcome{}, err
		}
		preset = cfg.Basic.GamePreset
		logger.Debug("using stored preset", logging.String("preset", preset))
	}
	return s.assets.UpdateBackgroundFromRemote(ctx, name, preset, kind)
}

// LoadSettings reads the launcher settings.
func (s *Service) LoadSettings(ctx context.Context) (settings.Settings, error) {
	_, logger := s.begin(ctx, "load_settings", "")
	logger.Debug("loading settings", logging.String("path", s.settings.Path()))
	return s.settings.Load()
}

// SaveSettings writes the launcher settings.
func (s *Service) SaveSettings(ctx context.Context, value settings.Settings) error {
	_, logger := s.begin(ctx, "save_settings", "")
	if err := s.settings.Save(value); err != nil {
		return err
	}
	logger.Info("settings saved", logging.String("path", s.settings.Path()))
	return nil
}

// ApplySetting updates one settings field by its JSON name.
func (s *Service) ApplySetting(ctx context.Context, key, value string) (settings.Settings, error) {
	_, logger := s.begin(ctx, "apply_setting", "")
	current, err := s.settings.Load()
	if err != nil {
		return settings.Settings{}, err
	}
	updated, err := current.Apply(key, value)
	if err != nil {
		return settings.Settings{}, err
	}
	if err := s.settings.Save(updated); err != nil {
		return settings.Settings{}, err
	}
	logger.Info("setting updated", logging.String("key", key))
	return updated, nil
}

// History lists recorded asset replacements, newest first.
func (s *Service) History(ctx context.Context, game string, limit int) ([]history.Entry, error) {
	ctx, _ = s.begin(ctx, "history", game)
	if s.history == nil {
		return nil, historyDisabled()
	}
	return s.history.List(ctx, game, limit)
}

// ClearHistory removes recorded replacements for game, or all when empty.
func (s *Service) ClearHistory(ctx context.Context, game string) (int64, error) {
	ctx, _ = s.begin(ctx, "clear_history", game)
	if s.history == nil {
		return 0, historyDisabled()
	}
	return s.history.Clear(ctx, game)
}

// OpenGameDir opens the game's directory in the platform file browser.
func (s *Service) OpenGameDir(ctx context.Context, name string) error {
	ctx, logger := s.begin(ctx, "open_game_dir", name)
	if _, err := s.ensureLibrary(ctx); err != nil {
		return err
	}
	dir, err := s.configs.Dir(name)
	if err != nil {
		return err
	}
	if !s.configs.Exists(name) {
		return services.Wrap(services.ErrNotFound, "launcher", "open game directory", dir, nil)
	}
	if err := s.opener(ctx, dir); err != nil {
		return services.Wrap(services.ErrIO, "launcher", "open game directory", dir, err)
	}
	logger.Debug("opened game directory", logging.String("path", dir))
	return nil
}

// Preflight runs the readiness checks. offline skips the catalog probe.
func (s *Service) Preflight(ctx context.Context, offline bool) []preflight.Result {
	ctx, logger := s.begin(ctx, "preflight", "")
	results := preflight.RunAll(ctx, s.cfg, preflight.Options{Catalog: s.catalog, Offline: offline})
	if failed := preflight.Failed(results); failed > 0 {
		logger.Warn("preflight checks failed", logging.Int("failed", failed))
	}
	return results
}

func historyDisabled() error {
	return services.Wrap(services.ErrUnsupported, "launcher", "history", "asset history is disabled (history.enabled = false)", nil)
}
