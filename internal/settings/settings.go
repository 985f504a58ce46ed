package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ssmt/internal/services"
)

// Settings are the launcher-wide UI preferences stored in Settings.json.
type Settings struct {
	BackgroundType    string  `json:"bgType"`
	BackgroundImage   string  `json:"bgImage"`
	BackgroundVideo   string  `json:"bgVideo"`
	SidebarOpacity    float64 `json:"sidebarOpacity"`
	SidebarBlur       int     `json:"sidebarBlur"`
	ContentOpacity    float64 `json:"contentOpacity"`
	ContentBlur       int     `json:"contentBlur"`
	CacheDir          string  `json:"cacheDir"`
	CurrentConfigName string  `json:"currentConfigName"`
}

// Default returns the settings used before anything is saved.
func Default() Settings {
	return Settings{
		BackgroundType:    "image",
		BackgroundImage:   "/background.png",
		BackgroundVideo:   "/background.webm",
		SidebarOpacity:    0.3,
		SidebarBlur:       20,
		ContentOpacity:    0.2,
		ContentBlur:       3,
		CacheDir:          "",
		CurrentConfigName: "Default",
	}
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.BackgroundType != "image" && s.BackgroundType != "video" {
		return invalid("bgType", fmt.Sprintf("%q must be image or video", s.BackgroundType))
	}
	if s.SidebarOpacity < 0 || s.SidebarOpacity > 1 {
		return invalid("sidebarOpacity", "must be between 0 and 1")
	}
	if s.ContentOpacity < 0 || s.ContentOpacity > 1 {
		return invalid("contentOpacity", "must be between 0 and 1")
	}
	if s.SidebarBlur < 0 || s.ContentBlur < 0 {
		return invalid("blur", "must not be negative")
	}
	return nil
}

// setters maps JSON field names to string parsers for the CLI.
var setters = map[string]func(*Settings, string) error{
	"bgType":            func(s *Settings, v string) error { s.BackgroundType = v; return nil },
	"bgImage":           func(s *Settings, v string) error { s.BackgroundImage = v; return nil },
	"bgVideo":           func(s *Settings, v string) error { s.BackgroundVideo = v; return nil },
	"cacheDir":          func(s *Settings, v string) error { s.CacheDir = v; return nil },
	"currentConfigName": func(s *Settings, v string) error { s.CurrentConfigName = v; return nil },
	"sidebarOpacity":    func(s *Settings, v string) error { return parseFloat(&s.SidebarOpacity, "sidebarOpacity", v) },
	"contentOpacity":    func(s *Settings, v string) error { return parseFloat(&s.ContentOpacity, "contentOpacity", v) },
	"sidebarBlur":       func(s *Settings, v string) error { return parseInt(&s.SidebarBlur, "sidebarBlur", v) },
	"contentBlur":       func(s *Settings, v string) error { return parseInt(&s.ContentBlur, "contentBlur", v) },
}

// Keys lists the settable field names, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply sets one field by its JSON name and validates the result.
func (s Settings) Apply(key, value string) (Settings, error) {
	set, ok := setters[key]
	if !ok {
		return s, invalid(key, "unknown setting (known: "+strings.Join(Keys(), ", ")+")")
	}
	if err := set(&s, strings.TrimSpace(value)); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func parseFloat(dst *float64, key, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return invalid(key, fmt.Sprintf("%q is not a number", v))
	}
	*dst = f
	return nil
}

func parseInt(dst *int, key, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return invalid(key, fmt.Sprintf("%q is not an integer", v))
	}
	*dst = n
	return nil
}

func invalid(key, msg string) error {
	return services.Wrap(services.ErrUnsupported, "settings", "validate", key+": "+msg, nil)
}
