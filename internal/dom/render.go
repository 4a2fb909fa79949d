package dom

import (
	"html"
	"io"
	"slices"
	"strings"
)

// voidTags never have children or closing tags.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "link": true, "meta": true,
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
		return err
	}
	return d.root.Render(w)
}

// Render writes e and its subtree as HTML. Attributes and style properties
// are emitted in sorted order so output is stable.
func (e *Element) Render(w io.Writer) error {
	var b strings.Builder
	e.render(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

// OuterHTML returns e rendered as HTML.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

func (e *Element) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.tag)

	if e.id != "" {
		writeAttr(b, "id", e.id)
	}
	if len(e.classes) > 0 {
		writeAttr(b, "class", e.ClassName())
	}
	for _, k := range sortedKeys(e.attrs) {
		writeAttr(b, k, e.attrs[k])
	}
	if len(e.style) > 0 {
		decls := make([]string, 0, len(e.style))
		for _, k := range sortedKeys(e.style) {
			decls = append(decls, k+": "+e.style[k])
		}
		writeAttr(b, "style", strings.Join(decls, "; "))
	}
	if e.tag == "input" && e.value != "" {
		writeAttr(b, "value", e.value)
	}
	b.WriteByte('>')

	if voidTags[e.tag] {
		return
	}

	b.WriteString(html.EscapeString(e.text))
	b.WriteString(e.inner)
	for _, c := range e.children {
		c.render(b)
	}

	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, k, v string) {
	b.WriteByte(' ')
	b.WriteString(k)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(v))
	b.WriteByte('"')
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
