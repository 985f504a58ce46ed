package gameconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Defaults applied when Config.json is missing or omits a field.
const (
	DefaultPreset         = "Default"
	DefaultBackgroundType = "image"
)

// Basic holds the fields the launcher itself reads.
type Basic struct {
	GamePreset     string `json:"gamePreset"`
	BackgroundType string `json:"backgroundType"`
}

// Config is the per-game Config.json document. ThreeDMigoto and Other are
// owned by the UI and carried through untouched.
type Config struct {
	Basic        Basic           `json:"basic"`
	ThreeDMigoto json.RawMessage `json:"threeDMigoto"`
	Other        json.RawMessage `json:"other"`
}

// Default returns a fully defaulted document.
func Default() Config {
	return Config{
		Basic: Basic{
			GamePreset:     DefaultPreset,
			BackgroundType: DefaultBackgroundType,
		},
	}
}

// Decode parses a Config.json payload, defaulting missing fields.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Encode renders cfg as indented JSON with a stable field order. Absent
// opaque sections are written as null.
func Encode(cfg Config) ([]byte, error) {
	cfg.applyDefaults()
	if len(bytes.TrimSpace(cfg.ThreeDMigoto)) == 0 {
		cfg.ThreeDMigoto = json.RawMessage("null")
	}
	if len(bytes.TrimSpace(cfg.Other)) == 0 {
		cfg.Other = json.RawMessage("null")
	}
	// Launch arguments and paths keep <, > and & literal.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode game config: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (c *Config) applyDefaults() {
	if c.Basic.GamePreset == "" {
		c.Basic.GamePreset = DefaultPreset
	}
	if c.Basic.BackgroundType == "" {
		c.Basic.BackgroundType = DefaultBackgroundType
	}
}
