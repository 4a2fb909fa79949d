package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ClassPrefix is prepended to a theme id to form its root class name.
const ClassPrefix = "theme-"

// Theme is a single catalog entry.
type Theme struct {
	ID       string `toml:"id" json:"id" yaml:"id"`
	Name     string `toml:"name" json:"name" yaml:"name"`
	Color    string `toml:"color" json:"color" yaml:"color"` // Accent colour, #rrggbb
	Category string `toml:"category" json:"category" yaml:"category"`
}

// Class returns the root class that selects this theme's stylesheet rules.
func (t Theme) Class() string {
	return ClassPrefix + t.ID
}

// Matches reports whether the display name contains query, ignoring case.
// An empty query matches every theme.
func (t Theme) Matches(query string) bool {
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(query))
}

// Group is a category and its themes in catalog order.
type Group struct {
	Category string  `toml:"category" json:"category" yaml:"category"`
	Themes   []Theme `toml:"theme" json:"themes" yaml:"themes"`
}

// catalogFile is the on-disk layout of catalog.toml.
type catalogFile struct {
	Default string  `toml:"default"`
	Themes  []Theme `toml:"theme"`
}

// Catalog is an immutable, ordered list of themes.
type Catalog struct {
	themes    []Theme
	index     map[string]int
	defaultID string
}

// ErrEmptyCatalog is returned when a catalog has no themes.
var ErrEmptyCatalog = errors.New("catalog has no themes")

// ParseCatalog parses a TOML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(f.Themes, f.Default)
}

// NewCatalog validates themes and builds a catalog. An empty defaultID
// selects the first theme.
func NewCatalog(themes []Theme, defaultID string) (*Catalog, error) {
	if len(themes) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		themes: make([]Theme, len(themes)),
		index:  make(map[string]int, len(themes)),
	}
	copy(c.themes, themes)

	for i, t := range c.themes {
		if t.ID == "" {
			return nil, fmt.Errorf("theme %d: missing id", i)
		}
		if t.Name == "" || t.Category == "" {
			return nil, fmt.Errorf("theme %q: name and category are required", t.ID)
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("theme %q: duplicate id", t.ID)
		}
		if _, err := ParseColor(t.Color); err != nil {
			return nil, fmt.Errorf("theme %q: %w", t.ID, err)
		}
		c.index[t.ID] = i
	}

	if defaultID == "" {
		defaultID = c.themes[0].ID
	}
	if _, ok := c.index[defaultID]; !ok {
		return nil, fmt.Errorf("default theme %q is not in the catalog", defaultID)
	}
	c.defaultID = defaultID

	return c, nil
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.themes)
}

// Themes returns a copy of all themes in catalog order.
func (c *Catalog) Themes() []Theme {
	out := make([]Theme, len(c.themes))
	copy(out, c.themes)
	return out
}

// IDs returns all theme ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.themes))
	for i, t := range c.themes {
		ids[i] = t.ID
	}
	return ids
}

// Lookup finds a theme by id.
func (c *Catalog) Lookup(id string) (Theme, bool) {
	i, ok := c.index[id]
	if !ok {
		return Theme{}, false
	}
	return c.themes[i], true
}

// Contains reports whether id names a catalog theme.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// DefaultID returns the catalog's default theme id.
func (c *Catalog) DefaultID() string {
	return c.defaultID
}

// Groups buckets themes by category. Categories appear in the order they
// are first seen in the catalog.
func (c *Catalog) Groups() []Group {
	var groups []Group
	pos := make(map[string]int)

	for _, t := range c.themes {
		i, ok := pos[t.Category]
		if !ok {
			i = len(groups)
			pos[t.Category] = i
			groups = append(groups, Group{Category: t.Category})
		}
		groups[i].Themes = append(groups[i].Themes, t)
	}

	return groups
}

// Filter returns the themes whose display name contains query,
// case-insensitively, in catalog order.
func (c *Catalog) Filter(query string) []Theme {
	var out []Theme
	for _, t := range c.themes {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}
