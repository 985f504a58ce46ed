package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Kind values stored in Entry.Kind.
const (
	KindIcon  = "icon"
	KindImage = "image"
	KindVideo = "video"
)

// Source values stored in Entry.Source.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Entry is one recorded asset replacement.
type Entry struct {
	ID         int64     `json:"id"`
	Game       string    `json:"game"`
	Kind       string    `json:"kind"`
	Source     string    `json:"source"`
	Origin     string    `json:"origin"`
	Target     string    `json:"target"`
	Bytes      int64     `json:"bytes"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Store persists asset replacements in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts entry and returns it with ID and RecordedAt assigned.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if strings.TrimSpace(entry.Game) == "" {
		return Entry{}, fmt.Errorf("record history: game is required")
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO asset_history (game, kind, source, origin, target, bytes, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Game,
		entry.Kind,
		entry.Source,
		entry.Origin,
		entry.Target,
		entry.Bytes,
		entry.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("history entry id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// List returns the newest entries first. An empty game lists every game; a
// limit of zero or less returns all rows.
func (s *Store) List(ctx context.Context, game string, limit int) ([]Entry, error) {
	query := `SELECT id, game, kind, source, origin, target, bytes, recorded_at FROM asset_history`
	var args []any
	if game = strings.TrimSpace(game); game != "" {
		query += ` WHERE game = ?`
		args = append(args, game)
	}
	query += ` ORDER BY recorded_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			recorded string
		)
		if err := rows.Scan(&entry.ID, &entry.Game, &entry.Kind, &entry.Source, &entry.Origin, &entry.Target, &entry.Bytes, &recorded); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
			entry.RecordedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Clear removes entries for game, or every entry when game is empty, and
// returns the number of rows deleted.
func (s *Store) Clear(ctx context.Context, game string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if game = strings.TrimSpace(game); game != "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM asset_history WHERE game = ?`, game)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM asset_history`)
	}
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}
