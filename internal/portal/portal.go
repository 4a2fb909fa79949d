package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/patchview/internal/theme"
)

// D-Bus names for the settings portal.
const (
	BusName          = "org.freedesktop.portal.Desktop"
	ObjectPath       = "/org/freedesktop/portal/desktop"
	SettingsIface    = "org.freedesktop.portal.Settings"
	AppearanceNS     = "org.freedesktop.appearance"
	ColorSchemeKey   = "color-scheme"
	readOneMethod    = SettingsIface + ".ReadOne"
	readMethod       = SettingsIface + ".Read"
	settingChangedSg = "SettingChanged"
)

// ColorScheme values defined by the appearance namespace.
const (
	SchemeNoPreference uint32 = 0
	SchemePreferDark   uint32 = 1
	SchemePreferLight  uint32 = 2
)

// ErrNoPreference is returned when the desktop has no colour scheme
// preference.
var ErrNoPreference = errors.New("desktop has no color scheme preference")

// Client queries the settings portal on the session bus.
type Client struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// Connect opens a client on the shared session bus connection.
func Connect(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Client{conn: conn, logger: logger}, nil
}

// ColorScheme returns the desktop's preferred mode. ReadOne is tried first
// and the deprecated Read is used as a fallback for older portals.
func (c *Client) ColorScheme(ctx context.Context) (theme.Mode, error) {
	obj := c.conn.Object(BusName, ObjectPath)

	var value dbus.Variant
	err := obj.CallWithContext(ctx, readOneMethod, 0, AppearanceNS, ColorSchemeKey).Store(&value)
	if err != nil {
		c.logger.Debug("portal ReadOne failed, trying Read", "error", err)
		if err := obj.CallWithContext(ctx, readMethod, 0, AppearanceNS, ColorSchemeKey).Store(&value); err != nil {
			return "", fmt.Errorf("failed to read %s.%s: %w", AppearanceNS, ColorSchemeKey, err)
		}
	}

	scheme, err := decodeScheme(value)
	if err != nil {
		return "", err
	}
	return ModeForScheme(scheme)
}

// Watch calls fn each time the desktop colour scheme changes, until ctx is
// cancelled. Changes to "no preference" are skipped.
func (c *Client) Watch(ctx context.Context, fn func(theme.Mode)) error {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(ObjectPath),
		dbus.WithMatchInterface(SettingsIface),
		dbus.WithMatchMember(settingChangedSg),
		dbus.WithMatchArg(0, AppearanceNS),
	}
	if err := c.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	signals := make(chan *dbus.Signal, 10)
	c.conn.Signal(signals)

	go func() {
		defer func() {
			c.conn.RemoveSignal(signals)
			_ = c.conn.RemoveMatchSignal(opts...)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				mode, ok := c.modeFromSignal(sig)
				if ok {
					fn(mode)
				}
			}
		}
	}()

	return nil
}

// modeFromSignal extracts the mode from a SettingChanged signal body
// (namespace, key, value).
func (c *Client) modeFromSignal(sig *dbus.Signal) (theme.Mode, bool) {
	if sig.Name != SettingsIface+"."+settingChangedSg || len(sig.Body) != 3 {
		return "", false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != AppearanceNS || key != ColorSchemeKey {
		return "", false
	}

	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return "", false
	}
	scheme, err := decodeScheme(value)
	if err != nil {
		c.logger.Debug("ignoring color-scheme signal", "error", err)
		return "", false
	}
	mode, err := ModeForScheme(scheme)
	if err != nil {
		return "", false
	}
	return mode, true
}

// decodeScheme unwraps the portal value. Read wraps the value in an extra
// variant, so nested variants are followed.
func decodeScheme(v dbus.Variant) (uint32, error) {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = inner.Value()
	}

	switch n := value.(type) {
	case uint32:
		return n, nil
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("invalid color-scheme value %d", n)
		}
		return uint32(n), nil
	case byte:
		return uint32(n), nil
	default:
		return 0, fmt.Errorf("unexpected color-scheme type %T", value)
	}
}

// ModeForScheme maps a portal color-scheme value to a mode.
func ModeForScheme(scheme uint32) (theme.Mode, error) {
	switch scheme {
	case SchemePreferDark:
		return theme.ModeDark, nil
	case SchemePreferLight:
		return theme.ModeLight, nil
	case SchemeNoPreference:
		return "", ErrNoPreference
	default:
		return "", fmt.Errorf("unknown color-scheme value %d", scheme)
	}
}

// SchemeReader is implemented by Client.
type SchemeReader interface {
	ColorScheme(ctx context.Context) (theme.Mode, error)
}

// ResolveMode returns the desktop preference when reader can supply one,
// then the terminal background, and finally theme.DefaultMode. reader may
// be nil.
func ResolveMode(ctx context.Context, reader SchemeReader, logger *slog.Logger) theme.Mode {
	if logger == nil {
		logger = slog.Default()
	}

	if reader != nil {
		mode, err := reader.ColorScheme(ctx)
		if err == nil {
			return mode
		}
		logger.Debug("desktop color scheme unavailable", "error", err)
	}

	return terminalMode(lipgloss.HasDarkBackground)
}

// terminalMode picks a mode from the terminal background probe.
func terminalMode(hasDark func() bool) theme.Mode {
	if hasDark == nil || hasDark() {
		return theme.ModeDark
	}
	return theme.ModeLight
}
