// Package osk is an on-screen keyboard overlay for controller driven devices.
//
// Init must be called once before Keyboard, and Close once at exit.
package osk

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/i18n"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/platform"
	"github.com/BrandonKowalski/osk/pkg/osk/platform/cannoli"
	"github.com/BrandonKowalski/osk/pkg/osk/platform/nextui"
	"golang.org/x/text/language"
)

type Options struct {
	WindowTitle string
	// Language selects the localized hint labels. The zero tag keeps English.
	Language    language.Tag
	FontPath    string
	LogFilename string
	// InputMapping is a JSON controller mapping, as produced by the input
	// capture tool. INPUT_MAPPING_PATH is used when empty.
	InputMapping []byte

	// IsNextUI and IsCannoli take colors, font and background from the
	// firmware. PrimaryThemeColorHex overrides the accent (0xRRGGBB).
	IsNextUI             bool
	IsCannoli            bool
	PrimaryThemeColorHex uint32
}

// frameTint is the platform accent used when a keyboard configures no base
// tint. Zero keeps the session default.
var frameTint constants.Color

// Init initializes SDL and the window.
func Init(options Options) error {
	if options.LogFilename != "" {
		logging.SetLogFilename(options.LogFilename)
	}

	if os.Getenv("OSK_DEBUG") != "" {
		logging.SetInternalLogLevel(slog.LevelDebug)
	} else {
		logging.SetInternalLogLevel(slog.LevelError)
	}

	if options.Language != language.Und {
		if err := i18n.InitI18NFromBytes(options.Language, nil); err != nil {
			logging.For("osk").Error("Failed to load translations", "language", options.Language.String(), "error", err)
		}
	}

	if len(options.InputMapping) > 0 {
		internal.SetInputMappingBytes(options.InputMapping)
	}

	if palette, ok := platformPalette(options); ok {
		internal.SetTheme(internal.ThemeFromPalette(palette))
		frameTint = palette.FrameTint()
	}

	if options.FontPath != "" {
		theme := internal.GetTheme()
		theme.FontPath = options.FontPath
		internal.SetTheme(theme)
	}

	return internal.Init(options.WindowTitle)
}

func platformPalette(options Options) (platform.Palette, bool) {
	var palette platform.Palette
	switch {
	case options.IsNextUI:
		palette = nextui.InitNextUIPalette()
	case options.IsCannoli:
		palette = cannoli.InitCannoliPalette(options.FontPath)
	default:
		return palette, false
	}
	return palette.WithAccent(options.PrimaryThemeColorHex), true
}

// Close tidies up SDL. Call it after the last Keyboard.
func Close() {
	internal.SDLCleanup()
	logging.CloseLogger()
}

func SetLogFilename(filename string) {
	logging.SetLogFilename(filename)
}

func GetLogger() *slog.Logger {
	return logging.GetLogger()
}

func SetLogLevel(level slog.Level) {
	logging.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	logging.SetRawLogLevel(level)
}

func HideWindow() {
	if w := internal.GetWindow(); w != nil {
		w.Window.Hide()
	}
}

func ShowWindow() {
	if w := internal.GetWindow(); w != nil {
		w.Window.Show()
	}
}
