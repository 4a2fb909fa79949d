package appearance

import (
	"log/slog"
	"strings"

	"github.com/jmylchreest/patchview/internal/dom"
	"github.com/jmylchreest/patchview/internal/store"
	"github.com/jmylchreest/patchview/internal/theme"
)

// Viewer is the diff viewer collaborator. It is asked to re-render after a
// mode change since syntax colouring depends on the mode.
type Viewer interface {
	ReRenderDiff()
}

// DefaultShortcut opens the theme picker.
const DefaultShortcut = "t"

// Option configures a Controller.
type Option func(*Controller)

// WithCatalog sets the theme catalog. Defaults to theme.Default().
func WithCatalog(c *theme.Catalog) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.catalog = c
		}
	}
}

// WithDefaults sets the preference used when nothing valid is stored.
func WithDefaults(p store.Preference) Option {
	return func(ctl *Controller) {
		ctl.defaults = p
		ctl.hasDefaults = true
	}
}

// WithKeys sets the persistence keys. Defaults to store.DefaultKeys().
func WithKeys(k store.Keys) Option {
	return func(ctl *Controller) {
		ctl.keys = k
	}
}

// WithViewer sets the viewer collaborator.
func WithViewer(v Viewer) Option {
	return func(ctl *Controller) {
		ctl.viewer = v
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// WithShortcut sets the key that opens the picker. Matching ignores case.
func WithShortcut(key string) Option {
	return func(ctl *Controller) {
		if key != "" {
			ctl.shortcut = key
		}
	}
}

// Controller owns the theme/mode preference and its presentation in a
// document. It is not safe for concurrent use; call it from the goroutine
// that dispatches the document's events.
type Controller struct {
	doc    *dom.Document
	kv     store.KV
	keys   store.Keys
	viewer Viewer
	logger *slog.Logger

	catalog     *theme.Catalog
	defaults    store.Preference
	hasDefaults bool
	shortcut    string

	theme string
	mode  theme.Mode

	initialized bool
}

// New creates a controller for doc backed by kv. State starts at the
// defaults; call Init to load the stored preference and wire the document.
func New(doc *dom.Document, kv store.KV, opts ...Option) *Controller {
	c := &Controller{
		doc:      doc,
		kv:       kv,
		keys:     store.DefaultKeys(),
		logger:   slog.Default(),
		catalog:  theme.Default(),
		shortcut: DefaultShortcut,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !c.hasDefaults || !c.catalog.Contains(c.defaults.Theme) {
		c.defaults.Theme = c.catalog.DefaultID()
	}
	if _, ok := theme.ParseMode(string(c.defaults.Mode)); !ok {
		c.defaults.Mode = theme.DefaultMode
	}

	c.theme = c.defaults.Theme
	c.mode = c.defaults.Mode
	return c
}

// Init loads the stored preference, applies it, renders the theme list and
// attaches the event listeners. Calls after the first do nothing.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.initialized = true

	p := store.Load(c.kv, c.keys, c.catalog, c.defaults)
	c.theme = p.Theme
	c.mode = p.Mode

	c.apply()
	c.renderThemeList()
	c.attachListeners()

	c.logger.Info("appearance initialized", "theme", c.theme, "mode", c.mode)
}

// SetTheme selects the theme with the given id and persists the choice.
// Unknown ids are ignored. It reports whether the theme was applied.
func (c *Controller) SetTheme(id string) bool {
	if !c.catalog.Contains(id) {
		c.logger.Debug("ignoring unknown theme", "theme", id)
		return false
	}

	c.theme = id
	c.save()
	c.apply()

	for _, item := range c.doc.QueryAll(ClassThemeItem) {
		item.SetClass(ClassActive, item.Data("theme") == id)
	}
	return true
}

// SetThemeFromURL applies a theme id taken from a deep link. Ids not in the
// catalog are ignored.
func (c *Controller) SetThemeFromURL(id string) bool {
	if !c.catalog.Contains(id) {
		return false
	}
	return c.SetTheme(id)
}

// ToggleMode flips between dark and light, persists, and asks the viewer to
// re-render.
func (c *Controller) ToggleMode() theme.Mode {
	c.mode = c.mode.Toggle()
	c.save()
	c.apply()

	if c.viewer != nil {
		c.viewer.ReRenderDiff()
	}
	return c.mode
}

// Filter hides rendered theme rows whose name does not contain query,
// ignoring case. An empty query shows every row. The preference is not
// touched. It returns the ids of the matching themes.
func (c *Controller) Filter(query string) []string {
	lower := strings.ToLower(query)
	for _, item := range c.doc.QueryAll(ClassThemeItem) {
		name := ""
		if n := item.Query(ClassThemeItemName); n != nil {
			name = n.TextContent()
		}
		if strings.Contains(strings.ToLower(name), lower) {
			item.SetStyle("display", "")
		} else {
			item.SetStyle("display", "none")
		}
	}

	matches := c.catalog.Filter(query)
	ids := make([]string, 0, len(matches))
	for _, t := range matches {
		ids = append(ids, t.ID)
	}
	return ids
}

// CurrentTheme returns the selected theme id.
func (c *Controller) CurrentTheme() string {
	return c.theme
}

// CurrentMode returns the selected mode.
func (c *Controller) CurrentMode() theme.Mode {
	return c.mode
}

// Themes returns the catalog entries in order.
func (c *Controller) Themes() []theme.Theme {
	return c.catalog.Themes()
}

// Preference returns the current theme and mode.
func (c *Controller) Preference() store.Preference {
	return store.Preference{Theme: c.theme, Mode: c.mode}
}

// Reload re-reads the stored preference, for when another process changed
// it, and re-applies it. The viewer re-renders when the mode changed. It
// reports whether anything changed.
func (c *Controller) Reload() bool {
	p := store.Load(c.kv, c.keys, c.catalog, c.defaults)
	if p.Theme == c.theme && p.Mode == c.mode {
		return false
	}

	modeChanged := p.Mode != c.mode
	c.theme = p.Theme
	c.mode = p.Mode
	c.apply()

	for _, item := range c.doc.QueryAll(ClassThemeItem) {
		item.SetClass(ClassActive, item.Data("theme") == c.theme)
	}

	if modeChanged && c.viewer != nil {
		c.viewer.ReRenderDiff()
	}

	c.logger.Debug("preference reloaded", "theme", c.theme, "mode", c.mode)
	return true
}

// SetDefaultMode changes the mode used when none is stored, as when the
// desktop colour scheme changes. A stored mode still wins. It reports
// whether the visible mode changed.
func (c *Controller) SetDefaultMode(m theme.Mode) bool {
	if _, ok := theme.ParseMode(string(m)); !ok {
		return false
	}
	c.defaults.Mode = m
	before := c.mode
	c.Reload()
	return c.mode != before
}

// save writes both values. Failures are logged; the in-memory state stays
// authoritative.
func (c *Controller) save() {
	if err := store.Save(c.kv, c.keys, c.Preference()); err != nil {
		c.logger.Warn("failed to persist appearance preference", "error", err)
	}
}

// current returns the selected catalog entry.
func (c *Controller) current() theme.Theme {
	if t, ok := c.catalog.Lookup(c.theme); ok {
		return t
	}
	t, _ := c.catalog.Lookup(c.catalog.DefaultID())
	return t
}

// apply replaces the root classes with the theme and mode classes and
// refreshes the theme button and mode toggle.
func (c *Controller) apply() {
	t := c.current()

	root := c.doc.Root()
	root.SetClassName("")
	root.AddClass(t.Class(), c.mode.String())

	c.updateThemeButton(t)
	c.updateModeToggle()
}

func (c *Controller) updateThemeButton(t theme.Theme) {
	btn := c.doc.GetElementByID(IDThemeButton)
	if btn == nil {
		return
	}
	if preview := btn.Query(ClassThemePreview); preview != nil {
		preview.SetStyle("background", t.Color)
	}
	if name := btn.Query(ClassThemeName); name != nil {
		name.SetText(t.Name)
	}
}

func (c *Controller) updateModeToggle() {
	icon := c.doc.GetElementByID(IDModeIcon)
	if icon == nil {
		return
	}
	icon.SetInnerHTML(c.mode.Icon())

	if toggle := c.doc.GetElementByID(IDModeToggle); toggle != nil {
		toggle.SetAttr("title", c.mode.ToggleTitle())
	}
}
