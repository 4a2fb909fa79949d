package output

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/patchview/internal/theme"
)

// JSONFormatter formats groups as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the groups as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, groups []theme.Group) error {
	if groups == nil {
		groups = []theme.Group{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(groups)
}

// YAMLFormatter formats groups as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes the groups as a YAML sequence.
func (f *YAMLFormatter) Format(w io.Writer, groups []theme.Group) error {
	if groups == nil {
		groups = []theme.Group{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(groups); err != nil {
		return err
	}
	return encoder.Close()
}

// TOMLFormatter formats groups as TOML, one [[group]] table per category.
type TOMLFormatter struct{}

// NewTOMLFormatter creates a new TOML formatter.
func NewTOMLFormatter() *TOMLFormatter {
	return &TOMLFormatter{}
}

// tomlDocument wraps the groups so they encode as an array of tables.
type tomlDocument struct {
	Groups []theme.Group `toml:"group"`
}

// Format writes the groups as TOML.
func (f *TOMLFormatter) Format(w io.Writer, groups []theme.Group) error {
	encoder := toml.NewEncoder(w)
	encoder.SetIndentTables(true)
	return encoder.Encode(tomlDocument{Groups: groups})
}
