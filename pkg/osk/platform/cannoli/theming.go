package cannoli

import (
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/platform"
)

const DefaultFontPath = "/mnt/SDCARD/System/fonts/Cannoli.ttf"

// InitCannoliPalette returns Cannoli's fixed palette. An empty fontPath uses
// the firmware font.
func InitCannoliPalette(fontPath string) platform.Palette {
	if fontPath == "" {
		fontPath = DefaultFontPath
	}
	return platform.Palette{
		Highlight:       constants.HexToColor(0xFFFFFF),
		Accent:          constants.HexToColor(0x008080),
		ButtonLabel:     constants.HexToColor(0x000000),
		Hint:            constants.HexToColor(0x000000),
		Text:            constants.HexToColor(0xFFFFFF),
		HighlightedText: constants.HexToColor(0x000000),
		Background:      constants.HexToColor(0xFFFFFF),
		FontPath:        fontPath,
	}
}
