// Package tui provides the BubbleTea-based terminal theme picker. It hosts a
// headless document with the viewer chrome and forwards key presses into it
// as DOM events, so the appearance controller drives every transition.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/patchview/internal/appearance"
	"github.com/jmylchreest/patchview/internal/config"
	"github.com/jmylchreest/patchview/internal/dom"
	"github.com/jmylchreest/patchview/internal/store"
	"github.com/jmylchreest/patchview/internal/theme"
)

// Options configures a Model.
type Options struct {
	Config   *config.Config
	KV       store.KV
	Changes  <-chan store.ChangeEvent // Store change feed (nil = no live reload)
	Desktop  <-chan theme.Mode        // Desktop colour scheme changes (nil = ignore)
	Defaults store.Preference         // Used when nothing valid is stored
	Patch    string                   // Patch text for the preview (empty = sample)
	Logger   *slog.Logger
}

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg *config.Config

	// Document and its controller
	doc     *dom.Document
	ctl     *appearance.Controller
	preview *Preview

	// Components
	search textinput.Model
	help   help.Model
	keys   KeyMap

	// State
	cursor   int
	showHelp bool
	width    int
	height   int
	ready    bool

	// Status message
	statusMsg string
	statusErr bool

	// Store change subscription
	refreshCh <-chan store.ChangeEvent
	desktopCh <-chan theme.Mode
}

// New creates a new TUI model. The document is built and the controller
// initialized immediately.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	kv := opts.KV
	if kv == nil {
		kv = store.NewMemoryKV(nil)
	}
	defaults := opts.Defaults
	if defaults.Theme == "" {
		defaults.Theme = cfg.Appearance.DefaultTheme
	}
	if defaults.Mode == "" {
		if m, ok := theme.ParseMode(cfg.Appearance.DefaultMode); ok {
			defaults.Mode = m
		} else {
			defaults.Mode = theme.DefaultMode
		}
	}

	catalog := theme.Default()
	doc := dom.NewDocument()
	appearance.BuildChrome(doc)
	preview := NewPreview(doc, catalog, opts.Patch)

	ctl := appearance.New(doc, kv,
		appearance.WithCatalog(catalog),
		appearance.WithKeys(cfg.StorageKeys()),
		appearance.WithDefaults(defaults),
		appearance.WithViewer(preview),
		appearance.WithLogger(opts.Logger),
		appearance.WithShortcut(cfg.Appearance.Shortcut),
	)
	ctl.Init()
	preview.build()

	search := textinput.New()
	search.Placeholder = "Search themes..."
	search.CharLimit = 40
	search.Prompt = ""

	return Model{
		cfg:       cfg,
		doc:       doc,
		ctl:       ctl,
		preview:   preview,
		search:    search,
		help:      help.New(),
		keys:      DefaultKeyMap(cfg.Appearance.Shortcut),
		refreshCh: opts.Changes,
		desktopCh: opts.Desktop,
	}
}

// Controller returns the appearance controller bound to the model's
// document.
func (m Model) Controller() *appearance.Controller {
	return m.ctl
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watchForChanges, m.watchDesktop)
}

// watchDesktop waits for the next desktop colour scheme change.
func (m Model) watchDesktop() tea.Msg {
	if m.desktopCh == nil {
		return nil
	}
	mode, ok := <-m.desktopCh
	if !ok {
		return nil
	}
	return desktopModeMsg{mode: mode}
}

type desktopModeMsg struct {
	mode theme.Mode
}

// watchForChanges waits for the next store change.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	ev, ok := <-m.refreshCh
	if !ok {
		return nil
	}
	return refreshMsg{event: ev}
}

type refreshMsg struct {
	event store.ChangeEvent
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	link string
	err  error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-12, 10)
		m.ready = true
		return m, nil

	case refreshMsg:
		// Local writes are ours and already applied.
		if msg.event.Source == store.ChangeSourceExternal && m.ctl.Reload() {
			return m, tea.Batch(m.watchForChanges, status("Preference changed in another session", false))
		}
		return m, m.watchForChanges

	case desktopModeMsg:
		if m.ctl.SetDefaultMode(msg.mode) {
			return m, tea.Batch(m.watchDesktop, status("Desktop switched to "+msg.mode.String()+" mode", false))
		}
		return m, m.watchDesktop

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied "+msg.link, false)
	}

	if m.ctl.DropdownOpen() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.ctl.DropdownOpen() {
		return m.handlePickerKey(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Close):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		if toggle := m.doc.GetElementByID(appearance.IDModeToggle); toggle != nil {
			toggle.Click()
		}
		return m, status("Switched to "+m.ctl.CurrentMode().String()+" mode", false)

	case key.Matches(msg, m.keys.CopyLink):
		return m, m.copyLink()
	}

	// Anything else is a keydown on the focused element; the controller's
	// shortcut handler opens the picker.
	if msg.Type == tea.KeyRunes && !msg.Alt {
		m.doc.KeyDown(msg.String())
		if m.ctl.DropdownOpen() {
			m.openPicker()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// openPicker syncs the search field and puts the cursor on the active row.
func (m *Model) openPicker() {
	m.search.SetValue("")
	m.search.Focus()
	m.cursor = 0
	for i, row := range m.visibleRows() {
		if row.HasClass(appearance.ClassActive) {
			m.cursor = i
			break
		}
	}
}

// handlePickerKey handles keys while the picker is open.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Close):
		m.doc.KeyDown(dom.KeyEscape)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		rows := m.visibleRows()
		if m.cursor >= 0 && m.cursor < len(rows) {
			rows[m.cursor].Click()
			cmd = status("Theme: "+m.currentThemeName(), false)
		}

	default:
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if v := m.search.Value(); v != before {
			if field := m.doc.GetElementByID(appearance.IDThemeSearch); field != nil {
				field.SetValue(v)
				field.Dispatch(dom.InputEvent())
			}
			m.cursor = 0
		}
	}

	if !m.ctl.DropdownOpen() {
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
	}
	return m, cmd
}

// visibleRows returns the theme rows not hidden by the filter.
func (m Model) visibleRows() []*dom.Element {
	var rows []*dom.Element
	for _, row := range m.doc.QueryAll(appearance.ClassThemeItem) {
		if row.Style("display") != "none" {
			rows = append(rows, row)
		}
	}
	return rows
}

func (m Model) currentThemeName() string {
	if btn := m.doc.GetElementByID(appearance.IDThemeButton); btn != nil {
		if name := btn.Query(appearance.ClassThemeName); name != nil {
			return name.TextContent()
		}
	}
	return m.ctl.CurrentTheme()
}

// copyLink copies a deep link for the current theme.
func (m Model) copyLink() tea.Cmd {
	link, err := appearance.DeepLink(m.cfg.Links.BaseURL, m.ctl.CurrentTheme())
	return func() tea.Msg {
		if err != nil {
			return copyResultMsg{err: err}
		}
		return copyResultMsg{link: link, err: copyText(link)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.viewHelp()
	}

	sections := []string{m.viewHeader()}
	if m.ctl.DropdownOpen() {
		sections = append(sections, m.viewPicker())
	}
	if m.cfg.TUI.ShowPreview {
		sections = append(sections, "", m.preview.View(m.width))
	}
	sections = append(sections, "", m.viewStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the theme button and mode toggle from the document.
func (m Model) viewHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var swatchColor, name string
	if btn := m.doc.GetElementByID(appearance.IDThemeButton); btn != nil {
		if preview := btn.Query(appearance.ClassThemePreview); preview != nil {
			swatchColor = preview.Style("background")
		}
		if n := btn.Query(appearance.ClassThemeName); n != nil {
			name = n.TextContent()
		}
	}

	title := ""
	if toggle := m.doc.GetElementByID(appearance.IDModeToggle); toggle != nil {
		title, _ = toggle.Attr("title")
	}

	mode := m.ctl.CurrentMode()
	return titleStyle.Render("patchview") +
		badge(swatchColor, name) + "   " +
		mode.Glyph() + " " + mode.String() + "  " +
		dimStyle.Render("("+title+")")
}

// viewPicker renders the open dropdown: search field then rows grouped by
// category.
func (m Model) viewPicker() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	rows := m.visibleRows()
	var b strings.Builder
	fmt.Fprintf(&b, "Search: %s %s\n", m.search.View(),
		labelStyle.UnsetBold().Render(fmt.Sprintf("(%d themes)", len(rows))))

	index := 0
	for _, category := range m.doc.QueryAll(appearance.ClassThemeCategory) {
		var lines []string
		for _, row := range category.QueryAll(appearance.ClassThemeItem) {
			if row.Style("display") == "none" {
				continue
			}

			color := ""
			if c := row.Query(appearance.ClassThemeItemColor); c != nil {
				color = c.Style("background-color")
			}
			label := ""
			if n := row.Query(appearance.ClassThemeItemName); n != nil {
				label = n.TextContent()
			}

			marker := "  "
			if index == m.cursor {
				marker = cursorStyle.Render("› ")
				label = cursorStyle.Render(label)
			}
			if row.HasClass(appearance.ClassActive) {
				label += " " + activeStyle.Render("●")
			}
			lines = append(lines, marker+swatch(color)+" "+label)
			index++
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(labelStyle.Render(category.Data("category")) + "\n")
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
	}

	if len(rows) == 0 {
		b.WriteString(labelStyle.UnsetBold().Render("No matching themes") + "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewStatusBar() string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}
	if !m.cfg.TUI.ShowHelp {
		return ""
	}
	if m.ctl.DropdownOpen() {
		return m.help.ShortHelpView(m.keys.PickerHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.FullHelpView(m.keys.FullHelp())
	s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")
	return s
}

// swatch renders a two-cell colour block.
func swatch(color string) string {
	if color == "" {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

// badge renders text on the accent colour with a readable foreground.
func badge(color, text string) string {
	accent, err := theme.ParseColor(color)
	if err != nil {
		return swatch("") + " " + text
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(theme.ContrastText(accent))).
		Padding(0, 1).
		Render(text)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config   *config.Config
	Store    *store.FileKV // nil = in-memory, nothing persisted
	Desktop  <-chan theme.Mode
	Defaults store.Preference
	Patch    string
	Logger   *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		kv      store.KV = store.NewMemoryKV(nil)
		changes <-chan store.ChangeEvent
		watcher *store.FileWatcher
	)
	if opts.Store != nil {
		kv = opts.Store
		changes = opts.Store.Subscribe()

		var err error
		watcher, err = store.NewFileWatcher(opts.Store, logger)
		if err != nil {
			logger.Warn("failed to create preferences watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start preferences watcher", "error", err)
		}
	}

	m := New(Options{
		Config:   opts.Config,
		KV:       kv,
		Changes:  changes,
		Desktop:  opts.Desktop,
		Defaults: opts.Defaults,
		Patch:    opts.Patch,
		Logger:   logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()

	// Stop watcher on exit
	if watcher != nil {
		_ = watcher.Stop()
	}

	return err
}
