package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a #rgb or #rrggbb accent colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return c, nil
}

// Accent returns the parsed accent colour. Catalog themes are validated on
// load, so the zero colour only appears for hand-built values.
func (t Theme) Accent() colorful.Color {
	c, _ := ParseColor(t.Color)
	return c
}

// ContrastText returns black or white, whichever reads better on top of the
// given accent colour.
func ContrastText(accent colorful.Color) string {
	l, _, _ := accent.Lab()
	if l > 0.65 {
		return "#000000"
	}
	return "#ffffff"
}

// Tint mixes the accent towards the mode's base (near black or near white)
// so swatches and highlights stay legible against either background.
func Tint(accent colorful.Color, m Mode, amount float64) string {
	base, _ := colorful.Hex("#11111b")
	if m == ModeLight {
		base, _ = colorful.Hex("#eff1f5")
	}
	return accent.BlendLab(base, amount).Clamped().Hex()
}
