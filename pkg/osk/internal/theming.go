package internal

import (
	"os"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/platform"
	"github.com/veandco/go-sdl2/sdl"
)

// Theme holds the colors the front end adds around the compiled primitives.
type Theme struct {
	CaretColor          sdl.Color
	PointerColor        sdl.Color
	IconColors          map[string]sdl.Color
	IconGlyphColor      sdl.Color
	FontPath            string
	BackgroundImagePath string
}

var currentTheme = DefaultTheme()

func DefaultTheme() Theme {
	return Theme{
		CaretColor:     sdl.Color{R: 255, G: 255, B: 255, A: 255},
		PointerColor:   sdl.Color{R: 255, G: 255, B: 255, A: 255},
		IconGlyphColor: sdl.Color{R: 20, G: 20, B: 20, A: 255},
		IconColors: map[string]sdl.Color{
			"button_a":      HexToColor(0xE0605A),
			"button_b":      HexToColor(0xE8C650),
			"button_x":      HexToColor(0x5A8FE0),
			"button_y":      HexToColor(0x5AC46E),
			"button_start":  HexToColor(0xCCCCCC),
			"button_select": HexToColor(0xCCCCCC),
			"pointer":       HexToColor(0xFFFFFF),
		},
		FontPath:            os.Getenv(constants.FallbackFontEnvVar),
		BackgroundImagePath: os.Getenv(constants.BackgroundPathEnvVar),
	}
}

// ThemeFromPalette dresses the keyboard in a firmware palette. Paths the
// palette leaves empty keep the environment defaults.
func ThemeFromPalette(p platform.Palette) Theme {
	theme := DefaultTheme()
	theme.CaretColor = SDLColor(p.Highlight)
	theme.PointerColor = SDLColor(p.Highlight)
	theme.IconGlyphColor = SDLColor(p.ButtonLabel)
	theme.IconColors["button_start"] = SDLColor(p.Hint)
	theme.IconColors["button_select"] = SDLColor(p.Hint)
	theme.IconColors["pointer"] = SDLColor(p.Highlight)
	if p.FontPath != "" {
		theme.FontPath = p.FontPath
	}
	if p.BackgroundImagePath != "" {
		theme.BackgroundImagePath = p.BackgroundImagePath
	}
	return theme
}

func SetTheme(theme Theme) {
	currentTheme = theme
}

func GetTheme() Theme {
	return currentTheme
}
