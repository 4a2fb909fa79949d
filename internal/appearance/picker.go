package appearance

import (
	"strings"

	"github.com/jmylchreest/patchview/internal/dom"
)

// Element ids and classes the controller looks for.
const (
	IDThemeButton   = "theme-button"
	IDThemeDropdown = "theme-dropdown"
	IDThemeSearch   = "theme-search"
	IDThemeList     = "theme-list"
	IDModeToggle    = "mode-toggle"
	IDModeIcon      = "mode-icon"
	IDDiffView      = "diff-view"

	ClassThemeSelector      = "theme-selector"
	ClassThemePreview       = "theme-preview"
	ClassThemeName          = "theme-name"
	ClassThemeCategory      = "theme-category"
	ClassThemeCategoryLabel = "theme-category-label"
	ClassThemeItem          = "theme-item"
	ClassThemeItemColor     = "theme-item-color"
	ClassThemeItemName      = "theme-item-name"
	ClassActive             = "active"
	ClassHidden             = "hidden"
)

// renderThemeList fills #theme-list with one group per category and one row
// per theme.
func (c *Controller) renderThemeList() {
	list := c.doc.GetElementByID(IDThemeList)
	if list == nil {
		return
	}

	groups := make([]*dom.Element, 0)
	for _, g := range c.catalog.Groups() {
		group := c.doc.CreateElement("div").
			AddClass(ClassThemeCategory).
			SetData("category", g.Category)
		group.AppendChild(c.doc.CreateElement("div").
			AddClass(ClassThemeCategoryLabel).
			SetText(g.Category))

		for _, t := range g.Themes {
			item := c.doc.CreateElement("div").
				AddClass(ClassThemeItem).
				SetData("theme", t.ID).
				SetClass(ClassActive, t.ID == c.theme)
			item.Append(
				c.doc.CreateElement("div").
					AddClass(ClassThemeItemColor).
					SetStyle("background-color", t.Color),
				c.doc.CreateElement("span").
					AddClass(ClassThemeItemName).
					SetText(t.Name),
			)

			id := t.ID
			item.AddEventListener(dom.EventClick, func(*dom.Event) {
				c.SetTheme(id)
				c.CloseDropdown()
			})
			group.AppendChild(item)
		}
		groups = append(groups, group)
	}

	list.ReplaceChildren(groups...)
}

// OpenDropdown shows the picker and focuses its search field.
func (c *Controller) OpenDropdown() {
	dropdown := c.doc.GetElementByID(IDThemeDropdown)
	if dropdown == nil {
		return
	}
	dropdown.RemoveClass(ClassHidden)

	if search := c.doc.GetElementByID(IDThemeSearch); search != nil {
		search.Focus()
	}
}

// CloseDropdown hides the picker, clears the search text and shows every
// row again.
func (c *Controller) CloseDropdown() {
	dropdown := c.doc.GetElementByID(IDThemeDropdown)
	if dropdown == nil {
		return
	}
	dropdown.AddClass(ClassHidden)

	if search := c.doc.GetElementByID(IDThemeSearch); search != nil {
		search.SetValue("")
		search.Blur()
	}
	for _, item := range c.doc.QueryAll(ClassThemeItem) {
		item.SetStyle("display", "")
	}
}

// DropdownOpen reports whether the picker is showing.
func (c *Controller) DropdownOpen() bool {
	dropdown := c.doc.GetElementByID(IDThemeDropdown)
	return dropdown != nil && !dropdown.HasClass(ClassHidden)
}

// attachListeners wires the picker's controls and the document-level
// outside click and shortcut handlers.
func (c *Controller) attachListeners() {
	if btn := c.doc.GetElementByID(IDThemeButton); btn != nil {
		btn.AddEventListener(dom.EventClick, func(e *dom.Event) {
			e.StopPropagation()
			if c.DropdownOpen() {
				c.CloseDropdown()
			} else {
				c.OpenDropdown()
			}
		})
	}

	if toggle := c.doc.GetElementByID(IDModeToggle); toggle != nil {
		toggle.AddEventListener(dom.EventClick, func(*dom.Event) {
			c.ToggleMode()
		})
	}

	if search := c.doc.GetElementByID(IDThemeSearch); search != nil {
		search.AddEventListener(dom.EventInput, func(e *dom.Event) {
			c.Filter(e.Target.Value())
		})
		search.AddEventListener(dom.EventKeyDown, func(e *dom.Event) {
			if e.Key == dom.KeyEscape {
				c.CloseDropdown()
			}
		})
	}

	c.doc.AddEventListener(dom.EventClick, func(e *dom.Event) {
		if !c.DropdownOpen() {
			return
		}
		selector := c.doc.Query(ClassThemeSelector)
		if selector == nil || !selector.Contains(e.Target) {
			c.CloseDropdown()
		}
	})

	c.doc.AddEventListener(dom.EventKeyDown, func(e *dom.Event) {
		if e.Target != nil && isTextEntry(e.Target) {
			return
		}
		if strings.EqualFold(e.Key, c.shortcut) {
			e.PreventDefault()
			c.OpenDropdown()
		}
	})
}

func isTextEntry(el *dom.Element) bool {
	switch el.Tag() {
	case "INPUT", "TEXTAREA":
		return true
	}
	return false
}
