// Package config loads the crosstalk settings file. Settings are TOML;
// enum-like values parse leniently the way the host bridge expects, with
// unknown strings falling back to safe defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyPersistenceMode names which held movement keys the host bridge
// keeps latched into the game while chat capture is active. The engine
// only carries the setting; the latching itself happens host-side.
type KeyPersistenceMode string

const (
	PersistFull KeyPersistenceMode = "full"
	PersistWASD KeyPersistenceMode = "wasd"
	PersistNone KeyPersistenceMode = "none"
)

// ParseKeyPersistenceMode parses leniently: unknown values mean full.
func ParseKeyPersistenceMode(value string) KeyPersistenceMode {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "none":
		return PersistNone
	case "wasd":
		return PersistWASD
	default:
		return PersistFull
	}
}

// Settings is the user-facing configuration document.
type Settings struct {
	// Username is the local display name attached to sent messages.
	Username string `toml:"username" json:"username"`

	// Channel is the chat scope messages are read from and sent to.
	Channel string `toml:"channel" json:"channel"`

	// InputMode selects the acquisition strategy: "focusless" or "ime".
	InputMode string `toml:"input_mode" json:"input_mode"`

	// KeyPersistence is the held-key latching mode: "full", "wasd" or
	// "none".
	KeyPersistence string `toml:"key_persistence" json:"key_persistence"`

	// CaretBlinkMs is the caret blink half-period in milliseconds.
	CaretBlinkMs int `toml:"caret_blink_ms" json:"caret_blink_ms"`

	// HistoryPath is the SQLite message history location.
	HistoryPath string `toml:"history_path" json:"history_path"`

	// HistoryLimit caps how many recent messages feed the username
	// roster.
	HistoryLimit int `toml:"history_limit" json:"history_limit"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Username:       "you",
		Channel:        "general",
		InputMode:      "focusless",
		KeyPersistence: string(PersistFull),
		CaretBlinkMs:   530,
		HistoryPath:    "crosstalk.db",
		HistoryLimit:   200,
	}
}

// Load reads settings from path. A missing file yields the defaults;
// present-but-invalid TOML is an error. Loaded values are normalized
// before being returned.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}

	settings.normalize()
	return settings, nil
}

// normalize folds out-of-range or unknown values back to defaults.
func (s *Settings) normalize() {
	def := Default()

	if strings.TrimSpace(s.Username) == "" {
		s.Username = def.Username
	}
	if strings.TrimSpace(s.Channel) == "" {
		s.Channel = def.Channel
	}
	s.KeyPersistence = string(ParseKeyPersistenceMode(s.KeyPersistence))
	if strings.TrimSpace(strings.ToLower(s.InputMode)) == "ime" {
		s.InputMode = "ime"
	} else {
		s.InputMode = "focusless"
	}
	if s.CaretBlinkMs <= 0 {
		s.CaretBlinkMs = def.CaretBlinkMs
	}
	if strings.TrimSpace(s.HistoryPath) == "" {
		s.HistoryPath = def.HistoryPath
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = def.HistoryLimit
	}
}
