package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/patchview/internal/theme"
)

func testGroups() []theme.Group {
	return []theme.Group{
		{
			Category: "Popular",
			Themes: []theme.Theme{
				{ID: "cosmic-night", Name: "Cosmic Night", Color: "#a48fff", Category: "Popular"},
				{ID: "dracula", Name: "Dracula", Color: "#bd93f9", Category: "Popular"},
			},
		},
		{
			Category: "Cool",
			Themes: []theme.Theme{
				{ID: "nord", Name: "Nord", Color: "#88c0d0", Category: "Cool"},
			},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	for _, format := range ValidFormats() {
		f, err := NewFormatter(format, FormatterOptions{})
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml", FormatterOptions{})
	assert.ErrorContains(t, err, "unknown format")

	_, err = NewFormatter(FormatDmenu, FormatterOptions{Template: "{{.Broken"})
	assert.ErrorContains(t, err, "invalid template")
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPlainFormatter(FormatterOptions{Current: "dracula"})
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testGroups()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Popular", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "   cosmic-night"))
	assert.True(t, strings.HasPrefix(lines[2], " * dracula"))
	assert.Equal(t, "Cool", lines[3])
	assert.Contains(t, lines[4], "#88c0d0")
}

func TestPlainFormatter_Template(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPlainFormatter(FormatterOptions{
		Template: "{{.Index}} {{marker .Current}} {{.Theme.ID}} {{upper .Category}}",
		Current:  "nord",
	})
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testGroups()))

	assert.Equal(t, "1   cosmic-night POPULAR\n2   dracula POPULAR\n3 * nord COOL\n", buf.String())
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewDmenuFormatter(FormatterOptions{Current: "nord"})
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testGroups()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Cosmic Night (Popular) | cosmic-night",
		"Dracula (Popular) | dracula",
		"* Nord (Cool) | nord",
	}, lines)

	for i, want := range []string{"cosmic-night", "dracula", "nord"} {
		assert.Equal(t, want, ParseDmenuLine(lines[i], ""))
	}
}

func TestDmenuFormatter_CustomSeparator(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewDmenuFormatter(FormatterOptions{Separator: "\t"})
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testGroups()[1:]))

	assert.Equal(t, "Nord (Cool)\tnord\n", buf.String())
	assert.Equal(t, "nord", ParseDmenuLine(buf.String(), "\t"))
}

func TestParseDmenuLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Tokyo Night (Cool) | tokyo-night", "tokyo-night"},
		{"* Nord (Cool) | nord\n", "nord"},
		{"  gruvbox  ", "gruvbox"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDmenuLine(tt.line, ""))
		})
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, testGroups()))

	var groups []theme.Group
	require.NoError(t, json.Unmarshal(buf.Bytes(), &groups))
	assert.Equal(t, testGroups(), groups)

	buf.Reset()
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter().Format(&buf, testGroups()))
	assert.Contains(t, buf.String(), "category: Popular")

	var groups []theme.Group
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &groups))
	assert.Equal(t, testGroups(), groups)
}

func TestTOMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTOMLFormatter().Format(&buf, testGroups()))
	assert.Contains(t, buf.String(), "[[group]]")
	assert.Contains(t, buf.String(), "[[group.theme]]")

	var doc tomlDocument
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, testGroups(), doc.Groups)
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIDsFormatter().Format(&buf, testGroups()))
	assert.Equal(t, "cosmic-night\ndracula\nnord\n", buf.String())
}

func TestFilter(t *testing.T) {
	groups := Filter(theme.Default().Groups(), "night")

	var ids []string
	for _, g := range groups {
		for _, th := range g.Themes {
			ids = append(ids, th.ID)
		}
	}
	assert.Equal(t, []string{"cosmic-night", "neon-nights", "tokyo-night", "midnight"}, ids)
	assert.Empty(t, Filter(theme.Default().Groups(), "zzz"))
}

func TestFormatField(t *testing.T) {
	th := theme.Theme{ID: "nord", Name: "Nord", Color: "#88c0d0", Category: "Cool"}

	tests := []struct {
		field string
		want  string
	}{
		{"id", "nord"},
		{"name", "Nord"},
		{"COLOR", "#88c0d0"},
		{"category", "Cool"},
		{"class", "theme-nord"},
		{"unknown", "nord"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatField(th, tt.field))
		})
	}
}
