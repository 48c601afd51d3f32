package constants

import "os"

const (
	DevModeEnvVar        = "ENVIRONMENT"
	BackgroundPathEnvVar = "BACKGROUND_PATH"
	FallbackFontEnvVar   = "FALLBACK_FONT"
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// IsDevMode is true when running on a desktop rather than on the device.
func IsDevMode() bool {
	return os.Getenv(DevModeEnvVar) == "DEV"
}
