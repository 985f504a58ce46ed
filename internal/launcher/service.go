package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"ssmt/internal/assets"
	"ssmt/internal/catalog"
	"ssmt/internal/config"
	"ssmt/internal/gameconfig"
	"ssmt/internal/history"
	"ssmt/internal/library"
	"ssmt/internal/logging"
	"ssmt/internal/resolver"
	"ssmt/internal/services"
	"ssmt/internal/settings"
	"ssmt/internal/shell"
)

// Service is the operations surface of the launcher backend. It owns every
// store and serializes mutations: per game for config and asset changes,
// library-wide for visibility changes.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger

	resolver  *resolver.Resolver
	bootstrap *library.Bootstrapper
	scanner   *library.Scanner
	configs   *gameconfig.Store
	assets    *assets.Synchronizer
	settings  *settings.Store
	history   *history.Store
	catalog   *catalog.Client
	opener    func(ctx context.Context, path string) error

	bootstrapMu sync.Mutex
	libraryMu   sync.Mutex
	games       keyedMutex
}

// Option customizes service construction.
type Option func(*options)

type options struct {
	resolver   *resolver.Options
	opener     func(ctx context.Context, path string) error
	catalogOpt []catalog.Option
}

// WithResolverOptions overrides the working and executable directories used
// for bundled resource lookups.
func WithResolverOptions(opts resolver.Options) Option {
	return func(o *options) { o.resolver = &opts }
}

// WithOpener replaces the platform file browser launcher.
func WithOpener(fn func(ctx context.Context, path string) error) Option {
	return func(o *options) { o.opener = fn }
}

// WithCatalogOptions passes options to the remote catalog client.
func WithCatalogOptions(opts ...catalog.Option) Option {
	return func(o *options) { o.catalogOpt = append(o.catalogOpt, opts...) }
}

// New wires a Service from cfg. The history database is opened when enabled;
// if it cannot be opened history is disabled with a warning.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("launcher: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resolverOpts := resolver.Options{}
	if o.resolver != nil {
		resolverOpts = *o.resolver
	}
	if resolverOpts.ResourceDir == "" {
		resolverOpts.ResourceDir = cfg.Paths.ResourceDir
	}
	resolverOpts.Logger = logger
	res := resolver.New(resolverOpts)

	client, err := catalog.NewClient(catalog.Config{
		BaseURL:        cfg.Catalog.BaseURL,
		LauncherID:     cfg.Catalog.LauncherID,
		Language:       cfg.Catalog.Language,
		TimeoutSeconds: cfg.Catalog.TimeoutSeconds,
	}, o.catalogOpt...)
	if err != nil {
		return nil, fmt.Errorf("launcher: %w", err)
	}

	s := &Service{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "launcher"),
		resolver:  res,
		bootstrap: library.NewBootstrapper(cfg.GlobalGamesDir(), res, logger),
		scanner:   library.NewScanner(logger),
		configs:   gameconfig.NewStore(cfg.GlobalGamesDir(), logger),
		settings:  settings.NewStore(cfg.SettingsPath()),
		catalog:   client,
		opener:    o.opener,
	}
	if s.opener == nil {
		s.opener = shell.Open
	}

	syncOpts := []assets.Option{
		assets.WithFetcher(client),
		assets.WithIconMaxSize(cfg.Assets.IconMaxSize),
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logging.WarnWithContext(s.logger, "asset history unavailable", "history_open_failed",
				logging.String("path", cfg.HistoryPath()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete history.db or set history.enabled = false"),
				logging.String(logging.FieldImpact, "asset replacements will not be recorded"),
			)
		} else {
			s.history = store
			syncOpts = append(syncOpts, assets.WithRecorder(store))
		}
	}
	s.assets = assets.NewSynchronizer(s.configs, logger, syncOpts...)
	return s, nil
}

// Close releases the history database.
func (s *Service) Close() error {
	if s == nil || s.history == nil {
		return nil
	}
	return s.history.Close()
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config { return s.cfg }

// begin tags ctx with a fresh correlation id, the operation, and the game.
func (s *Service) begin(ctx context.Context, operation, game string) (context.Context, *slog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	ctx = services.WithOperation(ctx, operation)
	ctx = services.WithGame(ctx, game)
	return ctx, logging.WithContext(ctx, s.logger)
}

// ensureLibrary bootstraps the global library on first use and returns its root.
func (s *Service) ensureLibrary(ctx context.Context) (string, error) {
	s.bootstrapMu.Lock()
	defer s.bootstrapMu.Unlock()
	result, err := s.bootstrap.EnsureGlobal(ctx)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}
