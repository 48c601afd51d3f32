package constants

// Color is an 8-bit RGBA color. It mirrors sdl.Color so that the core packages
// stay free of cgo.
type Color struct {
	R, G, B, A uint8
}

func HexToColor(hex uint32) Color {
	return Color{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 255,
	}
}

// WithAlpha returns a copy of c with the alpha channel set from a 0..1 fraction.
func (c Color) WithAlpha(alpha float64) Color {
	c.A = fractionToByte(alpha)
	return c
}

// Fade scales the alpha channel by a 0..1 factor.
func (c Color) Fade(factor float64) Color {
	c.A = fractionToByte(float64(c.A) / 255 * factor)
	return c
}

func fractionToByte(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
