package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/jmylchreest/patchview/internal/theme"
)

// PlainFormatter formats groups as aligned text under category headings.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes the groups as plain text.
func (f *PlainFormatter) Format(w io.Writer, groups []theme.Group) error {
	if f.template != nil {
		return f.formatTemplate(w, groups)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\n", g.Category)
		for _, t := range g.Themes {
			marker := " "
			if t.ID == f.opts.Current {
				marker = "*"
			}
			fmt.Fprintf(tw, " %s %s\t%s\t%s\n", marker, t.ID, t.Name, t.Color)
		}
	}
	return tw.Flush()
}

// formatTemplate executes the template once per theme, one per line.
func (f *PlainFormatter) formatTemplate(w io.Writer, groups []theme.Group) error {
	index := 0
	for _, g := range groups {
		for _, t := range g.Themes {
			index++
			var sb strings.Builder
			data := templateData{
				Index:    index,
				Theme:    t,
				Current:  t.ID == f.opts.Current,
				Category: g.Category,
			}
			if err := f.template.Execute(&sb, data); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, sb.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatField outputs a specific field of a theme.
func FormatField(t theme.Theme, field string) string {
	switch strings.ToLower(field) {
	case "name":
		return t.Name
	case "color", "colour":
		return t.Color
	case "category":
		return t.Category
	case "class":
		return t.Class()
	default:
		return t.ID
	}
}
