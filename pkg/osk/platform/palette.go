// Package platform describes the look of the handheld firmware the keyboard
// runs under. Loaders for each firmware live in the subpackages.
package platform

import "github.com/BrandonKowalski/osk/pkg/osk/constants"

// FrameTintAlpha is the opacity of the dialog frame drawn in the accent color.
const FrameTintAlpha = 230

// Palette is a firmware theme reduced to what the keyboard draws with.
type Palette struct {
	Highlight       constants.Color
	Accent          constants.Color
	ButtonLabel     constants.Color
	Text            constants.Color
	HighlightedText constants.Color
	Hint            constants.Color
	Background      constants.Color

	FontPath            string
	BackgroundImagePath string
}

// FrameTint is the accent color at frame opacity, used as the dialog's base
// tint when the caller configures none.
func (p Palette) FrameTint() constants.Color {
	c := p.Accent
	c.A = FrameTintAlpha
	return c
}

// WithAccent overrides the accent with a 0xRRGGBB value. Zero keeps it.
func (p Palette) WithAccent(hex uint32) Palette {
	if hex != 0 {
		p.Accent = constants.HexToColor(hex)
	}
	return p
}
