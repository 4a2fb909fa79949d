package appearance

import "github.com/jmylchreest/patchview/internal/dom"

// BuildChrome appends the header controls and the diff container the
// controller expects to doc's body, and returns the diff container.
func BuildChrome(doc *dom.Document) *dom.Element {
	header := doc.CreateElement("header").AddClass("toolbar")

	selector := doc.CreateElement("div").AddClass(ClassThemeSelector)
	selector.Append(
		doc.CreateElement("button").SetID(IDThemeButton).Append(
			doc.CreateElement("span").AddClass(ClassThemePreview),
			doc.CreateElement("span").AddClass(ClassThemeName),
		),
		doc.CreateElement("div").SetID(IDThemeDropdown).AddClass(ClassHidden).Append(
			doc.CreateElement("input").
				SetID(IDThemeSearch).
				SetAttr("type", "text").
				SetAttr("placeholder", "Search themes..."),
			doc.CreateElement("div").SetID(IDThemeList),
		),
	)

	toggle := doc.CreateElement("button").SetID(IDModeToggle).Append(
		doc.CreateElement("svg").
			SetID(IDModeIcon).
			SetAttr("viewBox", "0 0 24 24").
			SetAttr("fill", "none").
			SetAttr("stroke", "currentColor"),
	)

	header.Append(selector, toggle)

	diff := doc.CreateElement("main").SetID(IDDiffView)
	doc.Body().Append(header, diff)
	return diff
}
