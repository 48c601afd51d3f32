package internal

import (
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/present"
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
)

func HexToColor(hex uint32) sdl.Color {
	c := constants.HexToColor(hex)
	return SDLColor(c)
}

func SDLColor(c constants.Color) sdl.Color {
	return sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func SDLRect(r present.Rect) sdl.Rect {
	return sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}

// FillRect fills rect with color, blending when it is translucent.
func FillRect(renderer *sdl.Renderer, rect *sdl.Rect, color sdl.Color) {
	if color.A == 0 {
		return
	}
	renderer.SetDrawColor(color.R, color.G, color.B, color.A)
	renderer.FillRect(rect)
}

func DrawRoundedRect(renderer *sdl.Renderer, rect *sdl.Rect, radius int32, color sdl.Color) {
	if color.A == 0 {
		return
	}
	if radius <= 0 || radius*2 > rect.W || radius*2 > rect.H {
		FillRect(renderer, rect, color)
		return
	}

	gfx.BoxColor(renderer, rect.X+radius, rect.Y, rect.X+rect.W-radius-1, rect.Y+rect.H-1, color)
	gfx.BoxColor(renderer, rect.X, rect.Y+radius, rect.X+radius-1, rect.Y+rect.H-radius-1, color)
	gfx.BoxColor(renderer, rect.X+rect.W-radius, rect.Y+radius, rect.X+rect.W-1, rect.Y+rect.H-radius-1, color)

	drawRoundedCorner(renderer, rect.X+radius, rect.Y+radius, radius, color)
	drawRoundedCorner(renderer, rect.X+rect.W-radius-1, rect.Y+radius, radius, color)
	drawRoundedCorner(renderer, rect.X+radius, rect.Y+rect.H-radius-1, radius, color)
	drawRoundedCorner(renderer, rect.X+rect.W-radius-1, rect.Y+rect.H-radius-1, radius, color)
}

func drawRoundedCorner(renderer *sdl.Renderer, centerX, centerY, radius int32, color sdl.Color) {
	gfx.FilledCircleColor(renderer, centerX, centerY, radius, color)
	gfx.AACircleColor(renderer, centerX, centerY, radius, color)
	if radius > 5 {
		gfx.AACircleColor(renderer, centerX, centerY, radius-1, color)
	}
}

func Max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
