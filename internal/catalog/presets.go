package catalog

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"ssmt/internal/services"
)

// Background kinds understood by the catalog.
const (
	KindImage = "image"
	KindVideo = "video"
)

// presetGameIDs maps launcher presets to catalog game identifiers.
var presetGameIDs = map[string]string{
	"GIMI": "1Z8W5NHUQb",
	"HIMI": "osvnlOc0S8",
	"SRMI": "64kMb5iAWu",
	"ZZMI": "x6znKlJ0xK",
}

// ResolvePreset returns the catalog game id for preset.
func ResolvePreset(preset string) (string, error) {
	id, ok := presetGameIDs[preset]
	if !ok {
		return "", services.Wrap(services.ErrUnsupported, "catalog", "resolve preset",
			fmt.Sprintf("preset %q has no remote catalog entry (known: %s)", preset, strings.Join(Presets(), ", ")), nil)
	}
	return id, nil
}

// Presets lists the presets with catalog entries, sorted.
func Presets() []string {
	out := make([]string, 0, len(presetGameIDs))
	for k := range presetGameIDs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidateKind rejects anything other than image or video.
func ValidateKind(kind string) error {
	switch kind {
	case KindImage, KindVideo:
		return nil
	default:
		return services.Wrap(services.ErrUnsupported, "catalog", "validate kind", fmt.Sprintf("background kind %q", kind), nil)
	}
}

// mediaKey is the field under backgrounds[0] holding the media object.
func mediaKey(kind string) string {
	if kind == KindVideo {
		return "video"
	}
	return "background"
}

// MediaExtension derives the file extension for a downloaded background from
// the URL path, falling back to mp4 for video and png for images.
func MediaExtension(rawURL, kind string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), "."); ext != "" {
			return ext
		}
	}
	if kind == KindVideo {
		return "mp4"
	}
	return "png"
}
