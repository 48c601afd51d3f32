package nextui

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/platform"
)

const (
	NextValPathEnvVar   = "NEXTVAL_PATH"
	nextValExec         = "/mnt/SDCARD/.system/tg5040/bin/nextval.elf"
	backgroundImagePath = "/mnt/SDCARD/bg.png"
)

// NextVal is the settings dump printed by NextUI's nextval tool.
type NextVal struct {
	Font     int    `json:"font"`
	FontPath string `json:"fontpath"`
	Color1   string `json:"color1"`
	Color2   string `json:"color2"`
	Color3   string `json:"color3"`
	Color4   string `json:"color4"`
	Color5   string `json:"color5"`
	Color6   string `json:"color6"`
	BGColor  string `json:"bgcolor"`
}

var DefaultPalette = platform.Palette{
	Highlight:           constants.HexToColor(0xFFFFFF),
	Accent:              constants.HexToColor(0x9B2257),
	ButtonLabel:         constants.HexToColor(0x1E2329),
	Hint:                constants.HexToColor(0xFFFFFF),
	Text:                constants.HexToColor(0xFFFFFF),
	HighlightedText:     constants.HexToColor(0x000000),
	Background:          constants.HexToColor(0x000000),
	BackgroundImagePath: backgroundImagePath,
}

// InitNextUIPalette reads the device settings, or a static dump named by
// NEXTVAL_PATH in dev mode. The default palette is used when neither works.
func InitNextUIPalette() platform.Palette {
	var nv *NextVal
	var err error

	if constants.IsDevMode() {
		nv, err = ReadNextVal(os.Getenv(NextValPathEnvVar))
	} else {
		nv, err = loadNextVal()
	}
	if err != nil {
		logging.For("platform").Warn("Using default NextUI palette", "error", err)
		return DefaultPalette
	}

	p := nv.Palette()
	if constants.IsDevMode() {
		p.BackgroundImagePath = os.Getenv(constants.BackgroundPathEnvVar)
	}
	return p
}

// Palette maps the numbered nextval colors onto their roles.
func (nv *NextVal) Palette() platform.Palette {
	return platform.Palette{
		Highlight:           parseHexColor(nv.Color1),
		Accent:              parseHexColor(nv.Color2),
		ButtonLabel:         parseHexColor(nv.Color3),
		Text:                parseHexColor(nv.Color4),
		HighlightedText:     parseHexColor(nv.Color5),
		Hint:                parseHexColor(nv.Color6),
		Background:          parseHexColor(nv.BGColor),
		FontPath:            nv.FontPath,
		BackgroundImagePath: backgroundImagePath,
	}
}

func ReadNextVal(filePath string) (*NextVal, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseNextVal(data)
}

func ParseNextVal(data []byte) (*NextVal, error) {
	var nextval NextVal
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &nextval); err != nil {
		return nil, fmt.Errorf("error parsing nextval JSON: %w", err)
	}
	return &nextval, nil
}

func loadNextVal() (*NextVal, error) {
	output, err := exec.Command(nextValExec).Output()
	if err != nil {
		return nil, fmt.Errorf("run nextval: %w", err)
	}
	return ParseNextVal(output)
}

// parseHexColor reads "0xRRGGBB". Unreadable values come back red so they
// stand out on screen.
func parseHexColor(hexStr string) constants.Color {
	hexStr = strings.TrimPrefix(strings.TrimPrefix(hexStr, "0x"), "#")

	hex, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return constants.Color{R: 255, A: 255}
	}
	return constants.HexToColor(uint32(hex))
}
