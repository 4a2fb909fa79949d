package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/patchview/internal/appearance"
	"github.com/jmylchreest/patchview/internal/dom"
	"github.com/jmylchreest/patchview/internal/theme"
)

//go:embed sample.patch
var samplePatch string

// Diff line classes written into #diff-view.
const (
	classDiffLine    = "diff-line"
	classDiffMeta    = "diff-meta"
	classDiffHunk    = "diff-hunk"
	classDiffAdd     = "diff-add"
	classDiffDel     = "diff-del"
	classDiffContext = "diff-context"
)

// Preview is the diff viewer shown under the picker. It writes the patch
// into the document's #diff-view as classified lines and styles them from
// the presentation on the document root.
type Preview struct {
	doc     *dom.Document
	catalog *theme.Catalog
	patch   string
	renders int
}

// NewPreview creates a preview of patch. An empty patch shows a built-in
// sample.
func NewPreview(doc *dom.Document, catalog *theme.Catalog, patch string) *Preview {
	if patch == "" {
		patch = samplePatch
	}
	if catalog == nil {
		catalog = theme.Default()
	}
	p := &Preview{doc: doc, catalog: catalog, patch: patch}
	p.build()
	return p
}

// ReRenderDiff rebuilds the diff lines for the current mode.
func (p *Preview) ReRenderDiff() {
	p.renders++
	p.build()
}

// Renders returns how many times ReRenderDiff has been called.
func (p *Preview) Renders() int {
	return p.renders
}

// build replaces the children of #diff-view with one element per line.
func (p *Preview) build() {
	view := p.doc.GetElementByID(appearance.IDDiffView)
	if view == nil {
		return
	}

	mode := theme.DefaultMode
	if pres, ok := appearance.ReadPresentation(p.doc, p.catalog); ok {
		mode = pres.Mode
	}
	view.SetData("mode", mode.String())

	lines := strings.Split(strings.TrimRight(p.patch, "\n"), "\n")
	children := make([]*dom.Element, 0, len(lines))
	for _, line := range lines {
		children = append(children, p.doc.CreateElement("div").
			AddClass(classDiffLine, classifyLine(line)).
			SetText(line))
	}
	view.ReplaceChildren(children...)
}

// classifyLine returns the class for a unified diff line.
func classifyLine(line string) string {
	switch {
	case strings.HasPrefix(line, "diff "),
		strings.HasPrefix(line, "index "),
		strings.HasPrefix(line, "--- "),
		strings.HasPrefix(line, "+++ "):
		return classDiffMeta
	case strings.HasPrefix(line, "@@"):
		return classDiffHunk
	case strings.HasPrefix(line, "+"):
		return classDiffAdd
	case strings.HasPrefix(line, "-"):
		return classDiffDel
	default:
		return classDiffContext
	}
}

// diffPalette holds line colours for one mode.
type diffPalette struct {
	add, del, context string
}

var palettes = map[theme.Mode]diffPalette{
	theme.ModeDark:  {add: "#3fb950", del: "#f85149", context: "#c9d1d9"},
	theme.ModeLight: {add: "#1a7f37", del: "#cf222e", context: "#24292f"},
}

// View renders the lines in #diff-view, width columns wide (0 = unpadded).
func (p *Preview) View(width int) string {
	view := p.doc.GetElementByID(appearance.IDDiffView)
	if view == nil {
		return ""
	}

	pres, ok := appearance.ReadPresentation(p.doc, p.catalog)
	if !ok {
		t, _ := p.catalog.Lookup(p.catalog.DefaultID())
		pres = appearance.Presentation{Theme: t, Mode: theme.DefaultMode}
	}
	palette := palettes[pres.Mode]
	accent := pres.Theme.Accent()

	base := lipgloss.NewStyle().Background(lipgloss.Color(theme.Tint(accent, pres.Mode, 0.88)))
	if width > 0 {
		base = base.Width(width)
	}

	styles := map[string]lipgloss.Style{
		classDiffMeta:    base.Bold(true).Foreground(lipgloss.Color(pres.Theme.Color)),
		classDiffHunk:    base.Foreground(lipgloss.Color(theme.Tint(accent, pres.Mode.Toggle(), 0.35))),
		classDiffAdd:     base.Foreground(lipgloss.Color(palette.add)),
		classDiffDel:     base.Foreground(lipgloss.Color(palette.del)),
		classDiffContext: base.Foreground(lipgloss.Color(palette.context)),
	}

	var b strings.Builder
	for i, line := range view.Children() {
		if i > 0 {
			b.WriteByte('\n')
		}
		style := styles[classDiffContext]
		for class, s := range styles {
			if line.HasClass(class) {
				style = s
				break
			}
		}
		b.WriteString(style.Render(expandTabs(line.TextContent())))
	}
	return b.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
