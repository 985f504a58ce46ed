package library

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"ssmt/internal/fileutil"
	"ssmt/internal/logging"
	"ssmt/internal/services"
)

// Asset file names inside a game directory.
const (
	IconFile            = "Icon.png"
	BackgroundImageFile = "Background.png"
)

// videoProbe is the order in which background videos are looked up.
var videoProbe = []string{"Background.mp4", "Background.webm"}

// Game is the library view of one game directory. It is rebuilt on every
// scan and never persisted.
type Game struct {
	Name                string `json:"name"`
	IconPath            string `json:"iconPath"`
	BackgroundPath      string `json:"bgPath"`
	BackgroundVideoPath string `json:"bgVideoPath,omitempty"`
	Visible             bool   `json:"showSidebar"`
}

// Scanner builds Game records from a library root.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner constructs a Scanner.
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{logger: logging.NewComponentLogger(logger, "scanner")}
}

// Scan lists the immediate subdirectories of root and returns one Game per
// directory, sorted by name. An empty root yields an empty slice.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Game, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "scanner", "read games directory", root, err)
	}

	visibility, err := LoadVisibility(root)
	if err != nil {
		logging.WarnWithContext(s.logger, "visibility config unreadable; treating all games as hidden", "visibility_invalid",
			logging.String("path", filepath.Join(root, VisibilityFile)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or delete "+VisibilityFile),
		)
		visibility = Visibility{}
	}

	games := make([]Game, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !isGameDir(root, entry) {
			continue
		}
		games = append(games, s.describe(root, entry.Name(), visibility))
	}

	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	s.logger.Debug("games scanned", logging.String("root", root), logging.Int("count", len(games)))
	return games, nil
}

// isGameDir reports whether entry is a directory, following a symlinked entry
// to its target.
func isGameDir(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

func (s *Scanner) describe(root, name string, visibility Visibility) Game {
	dir := filepath.Join(root, name)
	icon := filepath.Join(dir, IconFile)
	background := filepath.Join(dir, BackgroundImageFile)

	for _, p := range []string{icon, background} {
		if !fileutil.Exists(p) {
			s.logger.Debug("asset missing", logging.String(logging.FieldGame, name), logging.String("path", p))
		}
	}

	game := Game{
		Name:           name,
		IconPath:       fileutil.DisplayPath(icon),
		BackgroundPath: fileutil.DisplayPath(background),
		Visible:        visibility.Visible(name),
	}
	for _, candidate := range videoProbe {
		path := filepath.Join(dir, candidate)
		if fileutil.Exists(path) {
			game.BackgroundVideoPath = fileutil.DisplayPath(path)
			break
		}
	}
	return game
}
