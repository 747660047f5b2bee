package config

import (
	"context"

	"github.com/mageise/gtd-any/kv"
)

// SettingsKey is the kv key player settings are stored under.
const SettingsKey = "blockfall-settings"

// Settings are the player preferences front ends persist between runs.
type Settings struct {
	Player string `json:"player"`
	Ghost  bool   `json:"ghost"`
	Scale  int    `json:"scale"`

	// Keys rebinds keys, e.g. {"w": "Rotate"}.
	Keys map[string]string `json:"keys,omitempty"`
}

// DefaultSettings returns the settings of a first run.
func DefaultSettings(c Config) Settings {
	return Settings{
		Player: c.Player,
		Ghost:  true,
		Scale:  1,
	}
}

// LoadSettings reads stored settings over the defaults. Fields a stored
// document does not mention keep their default, so documents written by an
// older version stay readable.
func LoadSettings(ctx context.Context, store kv.Store, def Settings) (Settings, error) {
	s, err := kv.GetJSON(ctx, store, SettingsKey, def)
	if err != nil {
		return def, err
	}
	if s.Scale < 1 {
		s.Scale = 1
	}
	if s.Player == "" {
		s.Player = def.Player
	}
	return s, nil
}

// SaveSettings stores s.
func SaveSettings(ctx context.Context, store kv.Store, s Settings) error {
	return kv.SetJSON(ctx, store, SettingsKey, s)
}
