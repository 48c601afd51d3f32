package internal

import (
	"errors"
	"sync"

	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/veandco/go-sdl2/ttf"
)

// ErrNoFont is returned when neither the theme font nor any system font opens.
var ErrNoFont = errors.New("no usable font found")

var systemFonts = []string{
	"/mnt/SDCARD/System/fonts/Cannoli.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
}

// Fonts caches one open font per point size.
var Fonts fontsManager

type fontsManager struct {
	mu    sync.Mutex
	path  string
	cache map[int]*ttf.Font
}

func initFonts(preferred string) error {
	candidates := systemFonts
	if preferred != "" {
		candidates = append([]string{preferred}, systemFonts...)
	}

	for _, path := range candidates {
		probe, err := ttf.OpenFont(path, 16)
		if err != nil {
			logging.For("fonts").Debug("Font unavailable", "path", path, "error", err)
			continue
		}
		probe.Close()

		Fonts = fontsManager{path: path, cache: make(map[int]*ttf.Font)}
		logging.For("fonts").Debug("Using font", "path", path)
		return nil
	}
	return ErrNoFont
}

// Font returns the font at size, opening it on first use.
func (f *fontsManager) Font(size int) *ttf.Font {
	if size <= 0 {
		size = 16
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if font, ok := f.cache[size]; ok {
		return font
	}

	font, err := ttf.OpenFont(f.path, size)
	if err != nil {
		logging.For("fonts").Error("Failed to open font", "path", f.path, "size", size, "error", err)
		return nil
	}
	f.cache[size] = font
	return font
}

func closeFonts() {
	Fonts.mu.Lock()
	defer Fonts.mu.Unlock()

	for size, font := range Fonts.cache {
		font.Close()
		delete(Fonts.cache, size)
	}
}
