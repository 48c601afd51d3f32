package nextui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"font":2,"fontpath":"/mnt/SDCARD/.system/res/font2.ttf",
"color1":"0xFFFFFF","color2":"0x2257A0","color3":"0x1E2329","color4":"0xEEEEEE",
"color5":"0x000000","color6":"0xAAAAAA","bgcolor":"0x101010"}
`

func TestParseNextVal(t *testing.T) {
	nv, err := ParseNextVal([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, nv.Font)

	p := nv.Palette()
	assert.Equal(t, constants.HexToColor(0x2257A0), p.Accent)
	assert.Equal(t, constants.HexToColor(0xFFFFFF), p.Highlight)
	assert.Equal(t, constants.HexToColor(0x101010), p.Background)
	assert.Equal(t, "/mnt/SDCARD/.system/res/font2.ttf", p.FontPath)
	assert.Equal(t, constants.Color{R: 0x22, G: 0x57, B: 0xA0, A: 230}, p.FrameTint())
}

func TestParseNextValRejectsGarbage(t *testing.T) {
	_, err := ParseNextVal([]byte("not json"))
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, constants.HexToColor(0x9B2257), parseHexColor("0x9B2257"))
	assert.Equal(t, constants.HexToColor(0x9B2257), parseHexColor("#9b2257"))
	assert.Equal(t, constants.Color{R: 255, A: 255}, parseHexColor("purple"))
}

func TestInitNextUIPaletteDevMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nextval.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	t.Setenv(constants.DevModeEnvVar, "DEV")
	t.Setenv(NextValPathEnvVar, path)
	t.Setenv(constants.BackgroundPathEnvVar, "/tmp/bg.png")

	p := InitNextUIPalette()
	assert.Equal(t, constants.HexToColor(0x2257A0), p.Accent)
	assert.Equal(t, "/tmp/bg.png", p.BackgroundImagePath)
}

func TestInitNextUIPaletteFallsBack(t *testing.T) {
	t.Setenv(constants.DevModeEnvVar, "DEV")
	t.Setenv(NextValPathEnvVar, filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, DefaultPalette, InitNextUIPalette())
}
