package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/jmylchreest/patchview/internal/theme"
)

// DefaultKeyPrefix scopes the preference keys, mirroring the keys the web
// viewer stores in localStorage.
const DefaultKeyPrefix = "git-patch-viewer-"

// DataDir returns the path to the patchview data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/patchview.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "patchview"), nil
}

// PreferencesPath returns the default path of the preferences file.
func PreferencesPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "preferences.json"), nil
}

// Keys names the two persisted preference values.
type Keys struct {
	Theme string
	Mode  string
}

// NewKeys builds keys from a prefix. An empty prefix gives the bare keys
// "theme" and "mode".
func NewKeys(prefix string) Keys {
	return Keys{
		Theme: prefix + "theme",
		Mode:  prefix + "mode",
	}
}

// DefaultKeys returns keys with DefaultKeyPrefix.
func DefaultKeys() Keys {
	return NewKeys(DefaultKeyPrefix)
}

// Preference is the persisted theme/mode pair.
type Preference struct {
	Theme string     `json:"theme" yaml:"theme"`
	Mode  theme.Mode `json:"mode" yaml:"mode"`
}

// DefaultPreference returns the catalog default theme in dark mode.
func DefaultPreference(catalog *theme.Catalog) Preference {
	return Preference{
		Theme: catalog.DefaultID(),
		Mode:  theme.DefaultMode,
	}
}

// Load reads the preference from kv. Each value falls back to its default
// independently when it is missing or not valid: the theme must name a
// catalog entry and the mode must be "dark" or "light".
func Load(kv KV, keys Keys, catalog *theme.Catalog, defaults Preference) Preference {
	p := defaults

	if id, ok := kv.Get(keys.Theme); ok && catalog.Contains(id) {
		p.Theme = id
	}
	if raw, ok := kv.Get(keys.Mode); ok {
		if m, ok := theme.ParseMode(raw); ok {
			p.Mode = m
		}
	}

	return p
}

// Save writes both values. Both writes are attempted even if the first one
// fails; the errors are joined.
func Save(kv KV, keys Keys, p Preference) error {
	return errors.Join(
		kv.Set(keys.Theme, p.Theme),
		kv.Set(keys.Mode, p.Mode.String()),
	)
}
