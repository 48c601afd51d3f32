package session

import (
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/BrandonKowalski/osk/pkg/osk/present"
	"github.com/BrandonKowalski/osk/pkg/osk/textbuf"
)

const (
	DefaultStartTimeout = time.Second
	startRetryInterval  = 10 * time.Millisecond

	// DefaultCloseDeadline bounds how long a close waits for the render side
	// to finish the fade before the result is delivered anyway.
	DefaultCloseDeadline = 2 * present.FadeDuration
)

// DefaultBaseTint is the frame color used when none is configured.
var DefaultBaseTint = constants.Color{R: 26, G: 26, B: 26, A: 230}

// Config describes one keyboard dialog.
type Config struct {
	Modes            panel.Mode
	Host             panel.Host
	PreferHostLocale bool
	// FirstView selects the initially active panel when several are offered.
	FirstView panel.Mode

	Title       string
	InitialText string
	MaxLength   int
	Prohibit    grid.Prohibit

	AlignX  present.XAlign
	AlignY  present.YAlign
	OffsetX int
	OffsetY int
	Scale   float64

	BaseTint constants.Color
	Dimmer   bool
	// InterceptInput asks the front end to keep input away from the host while open.
	InterceptInput bool

	ScreenW, ScreenH int
	StartTimeout     time.Duration
	CloseDeadline    time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxLength <= 0 {
		c.MaxLength = textbuf.DefaultMaxLength
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.ScreenW <= 0 {
		c.ScreenW = present.VirtualWidth
	}
	if c.ScreenH <= 0 {
		c.ScreenH = present.VirtualHeight
	}
	if c.BaseTint == (constants.Color{}) {
		c.BaseTint = DefaultBaseTint
	}
	if c.StartTimeout <= 0 {
		c.StartTimeout = DefaultStartTimeout
	}
	if c.CloseDeadline <= 0 {
		c.CloseDeadline = DefaultCloseDeadline
	}
	return c
}
