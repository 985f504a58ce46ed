package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ssmt/internal/fileutil"
	"ssmt/internal/services"
)

// VisibilityFile is the sidebar visibility document at the library root.
const VisibilityFile = "GameIconConfig.json"

// VisibilityEntry controls whether one game is shown in the sidebar.
type VisibilityEntry struct {
	GameName string `json:"GameName"`
	Show     bool   `json:"Show"`
}

// Visibility is the ordered list of per-game sidebar flags. At most one entry
// exists per name.
type Visibility struct {
	Entries []VisibilityEntry `json:"GameIconSettingList"`
}

// Visible reports the flag stored for name, false when absent.
func (v Visibility) Visible(name string) bool {
	for _, e := range v.Entries {
		if e.GameName == name {
			return e.Show
		}
	}
	return false
}

// Set updates the entry for name in place or appends a new one.
func (v *Visibility) Set(name string, show bool) {
	for i := range v.Entries {
		if v.Entries[i].GameName == name {
			v.Entries[i].Show = show
			return
		}
	}
	v.Entries = append(v.Entries, VisibilityEntry{GameName: name, Show: show})
}

// LoadVisibility reads the visibility document under root. A missing file
// yields an empty document; malformed content fails with ErrParse.
func LoadVisibility(root string) (Visibility, error) {
	path := filepath.Join(root, VisibilityFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Visibility{}, nil
		}
		return Visibility{}, services.Wrap(services.ErrIO, "library", "load visibility", path, err)
	}
	var doc Visibility
	if err := json.Unmarshal(data, &doc); err != nil {
		return Visibility{}, services.Wrap(services.ErrParse, "library", "load visibility", path, err)
	}
	return doc, nil
}

// SaveVisibility writes doc under root, replacing the previous file atomically.
func SaveVisibility(root string, doc Visibility) error {
	path := filepath.Join(root, VisibilityFile)
	if doc.Entries == nil {
		doc.Entries = []VisibilityEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return services.Wrap(services.ErrIO, "library", "encode visibility", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "library", "save visibility", path, err)
	}
	return nil
}

// SetVisibility upserts the sidebar flag for name in the document under root.
func SetVisibility(root, name string, show bool) error {
	if name == "" {
		return services.Wrap(services.ErrUnsupported, "library", "set visibility", "game name is empty", nil)
	}
	doc, err := LoadVisibility(root)
	if err != nil {
		return err
	}
	doc.Set(name, show)
	if err := SaveVisibility(root, doc); err != nil {
		return fmt.Errorf("set visibility for %q: %w", name, err)
	}
	return nil
}
