package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/patchview/internal/appearance"
	"github.com/jmylchreest/patchview/internal/config"
	"github.com/jmylchreest/patchview/internal/store"
	"github.com/jmylchreest/patchview/internal/theme"
)

func newTestModel(t *testing.T, kv store.KV, changes <-chan store.ChangeEvent) Model {
	t.Helper()
	m := New(Options{
		Config:  config.DefaultConfig(),
		KV:      kv,
		Changes: changes,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func TestNew_InitializesController(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)

	assert.Equal(t, "cosmic-night", m.Controller().CurrentTheme())
	assert.Equal(t, theme.ModeDark, m.Controller().CurrentMode())
	assert.False(t, m.Controller().DropdownOpen())
}

func TestNew_UsesConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.DefaultTheme = "nord"
	cfg.Appearance.DefaultMode = "light"

	m := New(Options{Config: cfg})
	assert.Equal(t, "nord", m.Controller().CurrentTheme())
	assert.Equal(t, theme.ModeLight, m.Controller().CurrentMode())

	m = New(Options{Config: cfg, Defaults: store.Preference{Mode: theme.ModeDark}})
	assert.Equal(t, "nord", m.Controller().CurrentTheme())
	assert.Equal(t, theme.ModeDark, m.Controller().CurrentMode())
}

func TestPickerFlow(t *testing.T) {
	kv := store.NewMemoryKV(nil)
	m := newTestModel(t, kv, nil)

	m, _ = send(t, m, typeRunes("t"))
	require.True(t, m.Controller().DropdownOpen())
	assert.Len(t, m.visibleRows(), 22)
	assert.Equal(t, 0, m.cursor, "cursor starts on the active theme")

	for _, r := range "tokyo" {
		m, _ = send(t, m, typeRunes(string(r)))
	}
	assert.Equal(t, "tokyo", m.search.Value())
	rows := m.visibleRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "tokyo-night", rows[0].Data("theme"))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "tokyo-night", m.Controller().CurrentTheme())
	assert.False(t, m.Controller().DropdownOpen())
	assert.Equal(t, "", m.search.Value())

	stored, _ := kv.Get(store.DefaultKeys().Theme)
	assert.Equal(t, "tokyo-night", stored)

	require.NotNil(t, cmd)
	assert.Equal(t, statusMsg{text: "Theme: Tokyo Night"}, cmd())
}

func TestPickerCursor(t *testing.T) {
	keys := store.DefaultKeys()
	m := newTestModel(t, store.NewMemoryKV(map[string]string{keys.Theme: "bubblegum"}), nil)

	m, _ = send(t, m, typeRunes("t"))
	assert.Equal(t, 2, m.cursor)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 4, m.cursor)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 3, m.cursor)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "pastel-dreams", m.Controller().CurrentTheme())
}

func TestPickerCursorClamps(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)
	m, _ = send(t, m, typeRunes("t"), tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 30; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 21, m.cursor)
}

func TestPickerEscapeCloses(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)

	m, _ = send(t, m, typeRunes("t"), typeRunes("z"), typeRunes("i"))
	require.Len(t, m.visibleRows(), 1)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Controller().DropdownOpen())
	assert.Len(t, m.visibleRows(), 22)
	assert.Equal(t, "", m.search.Value())
	assert.Equal(t, "cosmic-night", m.Controller().CurrentTheme())
}

func TestPickerTypingQuitKeyDoesNotQuit(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)

	m, _ = send(t, m, typeRunes("t"), typeRunes("q"))
	assert.True(t, m.Controller().DropdownOpen())
	assert.Equal(t, "q", m.search.Value())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)

	_, cmd := send(t, m, typeRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	m, _ = send(t, m, typeRunes("t"))
	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModeKeyTogglesAndReRenders(t *testing.T) {
	kv := store.NewMemoryKV(nil)
	m := newTestModel(t, kv, nil)

	m, cmd := send(t, m, typeRunes("m"))
	assert.Equal(t, theme.ModeLight, m.Controller().CurrentMode())
	assert.Equal(t, 1, m.preview.Renders())
	assert.Equal(t, statusMsg{text: "Switched to light mode"}, cmd())

	view := m.doc.GetElementByID(appearance.IDDiffView)
	assert.Equal(t, "light", view.Data("mode"))

	stored, _ := kv.Get(store.DefaultKeys().Mode)
	assert.Equal(t, "light", stored)
}

func TestUnboundKeyDoesNothing(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)
	m, cmd := send(t, m, typeRunes("x"))
	assert.Nil(t, cmd)
	assert.False(t, m.Controller().DropdownOpen())
}

func TestCustomShortcut(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.Shortcut = "p"
	m := New(Options{Config: cfg})

	m, _ = send(t, m, typeRunes("t"))
	assert.False(t, m.Controller().DropdownOpen())

	m, _ = send(t, m, typeRunes("p"))
	assert.True(t, m.Controller().DropdownOpen())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)

	m, _ = send(t, m, typeRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = send(t, m, typeRunes("m"))
	assert.Equal(t, theme.ModeDark, m.Controller().CurrentMode(), "keys are ignored on the help screen")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestRefreshFromExternalChange(t *testing.T) {
	kv := store.NewMemoryKV(nil)
	changes := make(chan store.ChangeEvent, 1)
	m := newTestModel(t, kv, changes)

	keys := store.DefaultKeys()
	require.NoError(t, kv.Set(keys.Theme, "forest"))
	changes <- store.ChangeEvent{Source: store.ChangeSourceExternal, Keys: []string{keys.Theme}}

	msg := m.watchForChanges()
	require.IsType(t, refreshMsg{}, msg)

	m, _ = send(t, m, msg)
	assert.Equal(t, "forest", m.Controller().CurrentTheme())
}

func TestRefreshIgnoresLocalChange(t *testing.T) {
	kv := store.NewMemoryKV(nil)
	m := newTestModel(t, kv, nil)

	require.NoError(t, kv.Set(store.DefaultKeys().Theme, "forest"))
	m, _ = send(t, m, refreshMsg{event: store.ChangeEvent{Source: store.ChangeSourceLocal}})
	assert.Equal(t, "cosmic-night", m.Controller().CurrentTheme())
}

func TestWatchForChanges_Closed(t *testing.T) {
	changes := make(chan store.ChangeEvent)
	close(changes)
	m := newTestModel(t, store.NewMemoryKV(nil), changes)
	assert.Nil(t, m.watchForChanges())

	m = newTestModel(t, store.NewMemoryKV(nil), nil)
	assert.Nil(t, m.watchForChanges())
}

func TestDesktopModeChange(t *testing.T) {
	desktop := make(chan theme.Mode, 1)
	m := New(Options{
		Config:  config.DefaultConfig(),
		KV:      store.NewMemoryKV(nil),
		Desktop: desktop,
	})

	desktop <- theme.ModeLight
	msg := m.watchDesktop()
	require.Equal(t, desktopModeMsg{mode: theme.ModeLight}, msg)

	m, _ = send(t, m, msg)
	assert.Equal(t, theme.ModeLight, m.Controller().CurrentMode())
	assert.Equal(t, 1, m.preview.Renders())

	close(desktop)
	assert.Nil(t, m.watchDesktop())
}

func TestCopyLink(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	cfg := config.DefaultConfig()
	cfg.Links.BaseURL = "https://patches.example.com/view"
	m := New(Options{Config: cfg})
	m.Controller().SetTheme("dracula")

	_, cmd := send(t, m, typeRunes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, copyResultMsg{link: "https://patches.example.com/view?theme=dracula"}, msg)
	assert.Equal(t, "https://patches.example.com/view?theme=dracula", copied)

	_, cmd = send(t, m, msg)
	assert.Equal(t, statusMsg{text: "Copied https://patches.example.com/view?theme=dracula"}, cmd())
}

func TestCopyLinkFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no xclip") }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t, store.NewMemoryKV(nil), nil)
	_, cmd := send(t, m, typeRunes("y"))
	msg := cmd()

	_, cmd = send(t, m, msg)
	got := cmd().(statusMsg)
	assert.True(t, got.isErr)
	assert.Contains(t, got.text, "no xclip")
}

func TestStatusMessageClears(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(nil), nil)

	m, cmd := send(t, m, statusMsg{text: "hello"})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "hello")

	m, _ = send(t, m, clearStatusMsg{})
	assert.NotContains(t, m.View(), "hello")
}

func TestView(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, "Initializing...", m.View())

	m = newTestModel(t, store.NewMemoryKV(nil), nil)
	view := m.View()
	assert.Contains(t, view, "Cosmic Night")
	assert.Contains(t, view, "Switch to light mode")
	assert.Contains(t, view, "ServeHTTP")
	assert.NotContains(t, view, "Search:")

	m, _ = send(t, m, typeRunes("t"))
	view = m.View()
	assert.Contains(t, view, "Search:")
	assert.Contains(t, view, "Popular")
	assert.Contains(t, view, "Cherry Blossom")

	m, _ = send(t, m, typeRunes("x"), typeRunes("y"), typeRunes("z"))
	assert.Contains(t, m.View(), "No matching themes")
}

func TestView_PreviewDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TUI.ShowPreview = false
	m := New(Options{Config: cfg})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.NotContains(t, m.View(), "ServeHTTP")
}
