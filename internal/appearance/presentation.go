package appearance

import (
	"strings"

	"github.com/jmylchreest/patchview/internal/dom"
	"github.com/jmylchreest/patchview/internal/theme"
)

// Presentation is the theme and mode currently applied to a document, as a
// viewer reading the root classes would see it.
type Presentation struct {
	Theme theme.Theme
	Mode  theme.Mode
}

// ReadPresentation decodes the root classes of doc. ok is false when the
// root carries no known theme class or no mode class.
func ReadPresentation(doc *dom.Document, catalog *theme.Catalog) (p Presentation, ok bool) {
	var haveTheme, haveMode bool
	for _, class := range doc.Root().Classes() {
		if id, found := strings.CutPrefix(class, theme.ClassPrefix); found {
			if t, known := catalog.Lookup(id); known {
				p.Theme = t
				haveTheme = true
			}
			continue
		}
		if m, valid := theme.ParseMode(class); valid {
			p.Mode = m
			haveMode = true
		}
	}
	return p, haveTheme && haveMode
}
