// Package output provides output formatters for theme listings.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/patchview/internal/theme"
)

// Formatter formats catalog groups for output.
type Formatter interface {
	// Format writes the groups to the writer.
	Format(w io.Writer, groups []theme.Group) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatTOML  FormatType = "toml"
	FormatDmenu FormatType = "dmenu"
	FormatIDs   FormatType = "ids"
)

// ValidFormats returns all format types.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatTOML, FormatDmenu, FormatIDs}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatTOML:
		return NewTOMLFormatter(), nil
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q, must be one of: %v", format, ValidFormats())
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom per-theme template for dmenu/plain format
	Current   string // Theme id to mark as current
	Separator string // Field separator for dmenu format
}

// DefaultSeparator separates the name and id in dmenu lines.
const DefaultSeparator = " | "

// templateData provides data for custom templates.
type templateData struct {
	Index    int
	Theme    theme.Theme
	Current  bool
	Category string
}

// Filter returns the groups reduced to themes whose name contains query.
// Empty groups are dropped.
func Filter(groups []theme.Group, query string) []theme.Group {
	out := make([]theme.Group, 0, len(groups))
	for _, g := range groups {
		var matched []theme.Theme
		for _, t := range g.Themes {
			if t.Matches(query) {
				matched = append(matched, t)
			}
		}
		if len(matched) > 0 {
			out = append(out, theme.Group{Category: g.Category, Themes: matched})
		}
	}
	return out
}
