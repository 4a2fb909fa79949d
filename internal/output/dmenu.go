package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/patchview/internal/theme"
)

// DmenuFormatter formats themes for dmenu/rofi/fuzzel, one per line. The
// line a launcher prints back can be turned into an id with ParseDmenuLine.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) (*DmenuFormatter, error) {
	f := &DmenuFormatter{opts: opts}
	if f.opts.Separator == "" {
		f.opts.Separator = DefaultSeparator
	}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes one line per theme.
func (f *DmenuFormatter) Format(w io.Writer, groups []theme.Group) error {
	index := 0
	for _, g := range groups {
		for _, t := range g.Themes {
			index++
			line, err := f.formatLine(index, g.Category, t)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatLine formats a single theme line.
func (f *DmenuFormatter) formatLine(index int, category string, t theme.Theme) (string, error) {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{
			Index:    index,
			Theme:    t,
			Current:  t.ID == f.opts.Current,
			Category: category,
		}
		if err := f.template.Execute(&buf, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	// Default format: [*] name (category) | id
	name := t.Name
	if t.ID == f.opts.Current {
		name = "* " + name
	}
	return name + " (" + category + ")" + f.opts.Separator + t.ID, nil
}

// ParseDmenuLine returns the theme id from a line produced by the default
// dmenu format: the text after the last separator, or the whole trimmed
// line when there is no separator.
func ParseDmenuLine(line, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	// Launchers may trim the line, so match the separator without padding.
	if trimmed := strings.TrimSpace(sep); trimmed != "" {
		sep = trimmed
	}
	line = strings.TrimRight(line, "\r\n")
	if i := strings.LastIndex(line, sep); i >= 0 {
		line = line[i+len(sep):]
	}
	return strings.TrimSpace(line)
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"marker": func(current bool) string {
			if current {
				return "*"
			}
			return " "
		},
	}
}
