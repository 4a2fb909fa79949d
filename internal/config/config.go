// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/patchview/internal/store"
	"github.com/jmylchreest/patchview/internal/theme"
)

// Default configuration values.
const (
	DefaultShortcut = "t"
	DefaultBaseURL  = ""
)

// ColorScheme is the configured default mode. Unlike theme.Mode it also
// accepts "system", which asks the desktop for its preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// Config represents the patchview configuration.
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Storage    StorageConfig    `toml:"storage"`
	TUI        TUIConfig        `toml:"tui"`
	Links      LinksConfig      `toml:"links"`
}

// AppearanceConfig holds the defaults used when no preference is stored.
type AppearanceConfig struct {
	DefaultTheme string `toml:"default_theme"` // Catalog theme id
	DefaultMode  string `toml:"default_mode"`  // "dark", "light" or "system"
	Shortcut     string `toml:"shortcut"`      // Key that opens the theme picker
}

// StorageConfig holds preference storage settings.
type StorageConfig struct {
	Path      string `toml:"path"`       // Empty = XDG data dir
	KeyPrefix string `toml:"key_prefix"` // Prepended to "theme" and "mode"
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp    bool `toml:"show_help"`
	ShowPreview bool `toml:"show_preview"`
}

// LinksConfig holds deep link settings.
type LinksConfig struct {
	BaseURL string `toml:"base_url"` // Viewer URL that ?theme= is appended to
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			DefaultTheme: theme.DefaultThemeID,
			DefaultMode:  string(ColorSchemeDark),
			Shortcut:     DefaultShortcut,
		},
		Storage: StorageConfig{
			Path:      "",
			KeyPrefix: store.DefaultKeyPrefix,
		},
		TUI: TUIConfig{
			ShowHelp:    true,
			ShowPreview: true,
		},
		Links: LinksConfig{
			BaseURL: DefaultBaseURL,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "patchview", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(theme.Default()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks the configuration against the theme catalog.
func (c *Config) Validate(catalog *theme.Catalog) error {
	if !catalog.Contains(c.Appearance.DefaultTheme) {
		return fmt.Errorf("default_theme %q is not a known theme", c.Appearance.DefaultTheme)
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Appearance.DefaultMode == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid default_mode %q, must be one of: %v", c.Appearance.DefaultMode, ValidColorSchemes())
	}

	if utf8.RuneCountInString(c.Appearance.Shortcut) != 1 {
		return fmt.Errorf("shortcut must be a single character, got %q", c.Appearance.Shortcut)
	}

	return nil
}

// ColorScheme returns the configured default mode.
func (c *Config) ColorScheme() ColorScheme {
	return ColorScheme(c.Appearance.DefaultMode)
}

// StorageKeys returns the preference keys for the configured prefix.
func (c *Config) StorageKeys() store.Keys {
	return store.NewKeys(c.Storage.KeyPrefix)
}

// PreferencesPath returns the configured preferences file path, falling
// back to the XDG data directory.
func (c *Config) PreferencesPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	return store.PreferencesPath()
}
