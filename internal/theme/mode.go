package theme

// Mode is the light/dark presentation mode.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// DefaultMode is used when no valid mode is stored.
const DefaultMode = ModeDark

// ValidModes returns all modes.
func ValidModes() []Mode {
	return []Mode{ModeDark, ModeLight}
}

// ParseMode accepts exactly "dark" or "light".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeDark:
		return ModeDark, true
	case ModeLight:
		return ModeLight, true
	default:
		return "", false
	}
}

// String returns the mode name, which is also its root class.
func (m Mode) String() string {
	return string(m)
}

// Toggle returns the opposite mode. Anything other than light toggles to light.
func (m Mode) Toggle() Mode {
	if m == ModeLight {
		return ModeDark
	}
	return ModeLight
}

// ToggleTitle is the tooltip for the mode button: it names the mode a click
// switches to.
func (m Mode) ToggleTitle() string {
	return "Switch to " + string(m.Toggle()) + " mode"
}

// Icon returns the inner SVG markup for the mode button: a moon while dark,
// a sun while light.
func (m Mode) Icon() string {
	if m == ModeLight {
		return sunIcon
	}
	return moonIcon
}

// Glyph is the single-character equivalent of Icon for terminals.
func (m Mode) Glyph() string {
	if m == ModeLight {
		return "☀"
	}
	return "☾"
}

const moonIcon = `<path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"></path>`

const sunIcon = `<circle cx="12" cy="12" r="5"></circle>` +
	`<line x1="12" y1="1" x2="12" y2="3"></line>` +
	`<line x1="12" y1="21" x2="12" y2="23"></line>` +
	`<line x1="4.22" y1="4.22" x2="5.64" y2="5.64"></line>` +
	`<line x1="18.36" y1="18.36" x2="19.78" y2="19.78"></line>` +
	`<line x1="1" y1="12" x2="3" y2="12"></line>` +
	`<line x1="21" y1="12" x2="23" y2="12"></line>` +
	`<line x1="4.22" y1="19.78" x2="5.64" y2="18.36"></line>` +
	`<line x1="18.36" y1="5.64" x2="19.78" y2="4.22"></line>`
