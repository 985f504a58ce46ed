package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ssmt/internal/catalog"
	"ssmt/internal/fileutil"
	"ssmt/internal/gameconfig"
	"ssmt/internal/history"
	"ssmt/internal/imageutil"
	"ssmt/internal/logging"
	"ssmt/internal/services"
)

const iconFile = "Icon.png"

// backgroundCandidates lists the files treated as "the background" per kind.
var backgroundCandidates = map[string][]string{
	catalog.KindImage: {"Background.png", "Background.webp", "Background.jpg", "Background.jpeg"},
	catalog.KindVideo: {"Background.mp4", "Background.webm", "Background.mkv"},
}

// ConfigStore is the slice of gameconfig.Store the synchronizer needs.
type ConfigStore interface {
	Dir(name string) (string, error)
	Update(name string, fn func(*gameconfig.Config)) (gameconfig.Config, error)
}

// Fetcher resolves and downloads remote backgrounds.
type Fetcher interface {
	BackgroundURL(ctx context.Context, preset, kind string) (string, error)
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

// Recorder stores a replacement in the asset history.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Outcome describes one completed replacement.
type Outcome struct {
	Game       string        `json:"game"`
	Kind       string        `json:"kind"`
	Source     string        `json:"source"`
	Origin     string        `json:"origin"`
	Target     string        `json:"target"`
	Bytes      int64         `json:"bytes"`
	Normalized bool          `json:"normalized,omitempty"`
	Cleanup    CleanupResult `json:"cleanup"`
}

// Synchronizer replaces icon and background files inside game directories.
type Synchronizer struct {
	configs     ConfigStore
	fetcher     Fetcher
	recorder    Recorder
	iconMaxSize int
	logger      *slog.Logger
}

// Option customizes the synchronizer.
type Option func(*Synchronizer)

// WithFetcher enables remote background updates.
func WithFetcher(f Fetcher) Option {
	return func(s *Synchronizer) { s.fetcher = f }
}

// WithRecorder records every replacement.
func WithRecorder(r Recorder) Option {
	return func(s *Synchronizer) { s.recorder = r }
}

// WithIconMaxSize bounds the longer side of normalized icons.
func WithIconMaxSize(size int) Option {
	return func(s *Synchronizer) { s.iconMaxSize = size }
}

// NewSynchronizer constructs a Synchronizer writing through configs.
func NewSynchronizer(configs ConfigStore, logger *slog.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		configs: configs,
		logger:  logging.NewComponentLogger(logger, "assets"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateKind rejects background kinds other than image and video.
func ValidateKind(kind string) error {
	if _, ok := backgroundCandidates[kind]; !ok {
		return services.Wrap(services.ErrUnsupported, "assets", "validate kind", fmt.Sprintf("background kind %q", kind), nil)
	}
	return nil
}

// SetBackground copies source into the game directory as Background.<ext>,
// removing every previous background of the same kind, and records kind as
// the game's background type.
func (s *Synchronizer) SetBackground(ctx context.Context, name, source, kind string) (Outcome, error) {
	if err := ValidateKind(kind); err != nil {
		return Outcome{}, err
	}
	dir, err := s.configs.Dir(name)
	if err != nil {
		return Outcome{}, err
	}
	if err := requireGameDir(dir); err != nil {
		return Outcome{}, err
	}
	if err := requireFile(source); err != nil {
		return Outcome{}, err
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
	if ext == "" {
		return Outcome{}, services.Wrap(services.ErrUnsupported, "assets", "set background",
			fmt.Sprintf("source %s has no file extension", source), nil)
	}

	logger := logging.WithContext(ctx, s.logger)
	tmp := fileutil.TempPath(dir, "Background")
	n, err := fileutil.CopyFileVerified(source, tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return Outcome{}, services.Wrap(services.ErrIO, "assets", "stage background", source, err)
	}

	outcome := Outcome{Game: name, Kind: kind, Source: history.SourceLocal, Origin: source, Bytes: n}
	if err := s.swap(logger, &outcome, dir, tmp, "Background."+ext, backgroundCandidates[kind]); err != nil {
		return Outcome{}, err
	}
	if err := s.persistKind(name, kind); err != nil {
		return outcome, err
	}
	s.record(ctx, logger, outcome)
	return outcome, nil
}

// SetIcon installs source as the game's Icon.png. Decodable images are
// normalized to PNG and downscaled; anything else is copied verbatim.
func (s *Synchronizer) SetIcon(ctx context.Context, name, source string) (Outcome, error) {
	dir, err := s.configs.Dir(name)
	if err != nil {
		return Outcome{}, err
	}
	if err := requireGameDir(dir); err != nil {
		return Outcome{}, err
	}
	if err := requireFile(source); err != nil {
		return Outcome{}, err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return Outcome{}, services.Wrap(services.ErrIO, "assets", "read icon", source, err)
	}

	logger := logging.WithContext(ctx, s.logger)
	outcome := Outcome{Game: name, Kind: history.KindIcon, Source: history.SourceLocal, Origin: source}

	normalized, err := imageutil.NormalizePNG(bytes.NewReader(data), s.iconMaxSize)
	switch {
	case err == nil:
		data = normalized.PNG
		outcome.Normalized = true
		logger.Debug("icon normalized",
			logging.String("format", normalized.Format),
			logging.Int("width", normalized.Width),
			logging.Int("height", normalized.Height),
			logging.Bool("scaled", normalized.Scaled),
		)
	case errors.Is(err, imageutil.ErrUndecodable):
		logging.WarnWithContext(logger, "icon is not a decodable image; copying as-is", "icon_passthrough",
			logging.String("source", source),
			logging.Error(err),
			logging.String(logging.FieldImpact, "the launcher may fail to display this icon"),
		)
	default:
		return Outcome{}, services.Wrap(services.ErrIO, "assets", "normalize icon", source, err)
	}

	tmp := fileutil.TempPath(dir, "Icon")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return Outcome{}, services.Wrap(services.ErrIO, "assets", "stage icon", tmp, err)
	}
	outcome.Bytes = int64(len(data))

	if err := s.swap(logger, &outcome, dir, tmp, iconFile, []string{iconFile}); err != nil {
		return Outcome{}, err
	}
	s.record(ctx, logger, outcome)
	return outcome, nil
}

// UpdateBackgroundFromRemote downloads the current catalog background for
// preset and installs it. Both requests complete before any file in the game
// directory is touched.
func (s *Synchronizer) UpdateBackgroundFromRemote(ctx context.Context, name, preset, kind string) (Outcome, error) {
	if err := ValidateKind(kind); err != nil {
		return Outcome{}, err
	}
	if s.fetcher == nil {
		return Outcome{}, services.Wrap(services.ErrUnsupported, "assets", "update background", "remote catalog is not configured", nil)
	}
	dir, err := s.configs.Dir(name)
	if err != nil {
		return Outcome{}, err
	}
	if err := requireGameDir(dir); err != nil {
		return Outcome{}, err
	}

	logger := logging.WithContext(ctx, s.logger)
	mediaURL, err := s.fetcher.BackgroundURL(ctx, preset, kind)
	if err != nil {
		return Outcome{}, err
	}
	logger.Info("downloading background", logging.String("url", mediaURL), logging.String("preset", preset))
	data, err := s.fetcher.Download(ctx, mediaURL)
	if err != nil {
		return Outcome{}, err
	}

	tmp := fileutil.TempPath(dir, "Background")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return Outcome{}, services.Wrap(services.ErrIO, "assets", "stage background", tmp, err)
	}

	outcome := Outcome{Game: name, Kind: kind, Source: history.SourceRemote, Origin: mediaURL, Bytes: int64(len(data))}
	target := "Background." + catalog.MediaExtension(mediaURL, kind)
	if err := s.swap(logger, &outcome, dir, tmp, target, backgroundCandidates[kind]); err != nil {
		return Outcome{}, err
	}
	if err := s.persistKind(name, kind); err != nil {
		return outcome, err
	}
	s.record(ctx, logger, outcome)
	return outcome, nil
}

// swap removes the candidates and renames the staged file into place.
func (s *Synchronizer) swap(logger *slog.Logger, outcome *Outcome, dir, tmp, targetName string, candidates []string) error {
	outcome.Cleanup = removeCandidates(dir, candidates, logger)
	target := filepath.Join(dir, targetName)
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return services.Wrap(services.ErrIO, "assets", "install asset", target, err)
	}
	outcome.Target = target
	logger.Info("asset replaced",
		logging.String("kind", outcome.Kind),
		logging.String("target", target),
		logging.Int64("bytes", outcome.Bytes),
		logging.Int("removed", len(outcome.Cleanup.Removed)),
		logging.String(logging.FieldEventType, "asset_replaced"),
	)
	return nil
}

func (s *Synchronizer) persistKind(name, kind string) error {
	_, err := s.configs.Update(name, func(cfg *gameconfig.Config) {
		cfg.Basic.BackgroundType = kind
	})
	if err != nil {
		return fmt.Errorf("record background type: %w", err)
	}
	return nil
}

func (s *Synchronizer) record(ctx context.Context, logger *slog.Logger, outcome Outcome) {
	if s.recorder == nil {
		return
	}
	_, err := s.recorder.Record(ctx, history.Entry{
		Game:   outcome.Game,
		Kind:   outcome.Kind,
		Source: outcome.Source,
		Origin: outcome.Origin,
		Target: outcome.Target,
		Bytes:  outcome.Bytes,
	})
	if err != nil {
		logging.WarnWithContext(logger, "failed to record asset history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "history will miss this replacement"),
		)
	}
}

// requireGameDir rejects asset writes for a game that is not in the library.
func requireGameDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "assets", "open game directory", fmt.Sprintf("game directory does not exist: %s", dir), nil)
		}
		return services.Wrap(services.ErrIO, "assets", "open game directory", dir, err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrNotFound, "assets", "open game directory", fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "assets", "open source", fmt.Sprintf("source file does not exist: %s", path), nil)
		}
		return services.Wrap(services.ErrIO, "assets", "open source", path, err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrUnsupported, "assets", "open source", fmt.Sprintf("%s is a directory", path), nil)
	}
	return nil
}
