// Package present compiles keyboard state into renderer agnostic primitives.
package present

import (
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"go.uber.org/atomic"
)

type Kind int

const (
	KindRect Kind = iota
	KindLabel
	KindImage
)

// Primitive is one drawable element. X, Y, W, H are virtual screen units.
type Primitive struct {
	Kind Kind
	Rect
	Back     constants.Color
	Fore     constants.Color
	Text     string
	Image    string
	FontSize int
	Align    constants.TextAlign
	// Caret is the rune index of the caret in Text, or -1 for none.
	Caret int

	Pulse       bool
	PulseOffset float64
	PulseStart  time.Time
}

// Image names used by primitives. The renderer maps them onto icons.
const (
	ImageButtonA      = "button_a"
	ImageButtonB      = "button_b"
	ImageButtonX      = "button_x"
	ImageButtonY      = "button_y"
	ImageButtonStart  = "button_start"
	ImageButtonSelect = "button_select"
	ImagePointer      = "pointer"
)

// PulseResetOffset is the phase a pulse restarts from after user interaction.
const PulseResetOffset = 0.6

var (
	disabledBack = constants.Color{R: 77, G: 77, B: 77, A: 255}
	disabledFore = constants.Color{R: 204, G: 204, B: 204, A: 255}
	normalFore   = constants.Color{A: 255}
	white        = constants.Color{R: 255, G: 255, B: 255, A: 255}
	black        = constants.Color{A: 255}
	transparent  = constants.Color{}
)

const (
	dimmerAlpha      = 0.8
	titleAlpha       = 0.7
	placeholderAlpha = 0.5
)

// Scene is everything the assembler needs to draw one frame.
type Scene struct {
	Layout      Layout
	Grid        *grid.Grid
	Charset     int
	Layer       int
	Title       string
	Placeholder string
	Text        string
	Caret       int
	Dimmer      bool
	BaseTint    constants.Color
	Hints       map[HintKind]string
	ResetPulse  bool
	Now         time.Time
}

var hintImages = map[HintKind]string{
	HintCancel:    ImageButtonY,
	HintSpace:     ImageButtonX,
	HintBackspace: ImageButtonB,
	HintShift:     ImageButtonSelect,
	HintAccept:    ImageButtonStart,
}

// Assembler caches the compiled primitives until it is invalidated.
type Assembler struct {
	dirty       *atomic.Bool
	cache       []Primitive
	pulseOffset float64
	pulseStart  time.Time
}

func NewAssembler() *Assembler {
	return &Assembler{dirty: atomic.NewBool(true)}
}

// Invalidate marks the cache stale. Safe from any goroutine.
func (a *Assembler) Invalidate() {
	a.dirty.Store(true)
}

func (a *Assembler) Dirty() bool {
	return a.dirty.Load()
}

// Compile returns the cached primitives, rebuilding them first when dirty.
// The returned slice must not be modified.
func (a *Assembler) Compile(s Scene) []Primitive {
	if !a.dirty.Swap(false) && a.cache != nil {
		return a.cache
	}

	if s.ResetPulse || a.pulseStart.IsZero() {
		a.pulseOffset = PulseResetOffset
		a.pulseStart = s.Now
	}

	fontSize := Scaled(16, s.Layout.Scale)
	out := make([]Primitive, 0, 16+2*s.Grid.Size())

	back := transparent
	if s.Dimmer {
		back = black.WithAlpha(dimmerAlpha)
	}
	out = append(out, Primitive{Kind: KindRect, Rect: s.Layout.Screen, Back: back, Caret: -1})
	out = append(out, Primitive{Kind: KindRect, Rect: s.Layout.Frame, Back: s.BaseTint, Caret: -1})
	out = append(out, Primitive{
		Kind: KindLabel, Rect: s.Layout.Title,
		Back: s.BaseTint.Fade(titleAlpha), Fore: white,
		Text: s.Title, FontSize: fontSize, Align: constants.TextAlignLeft, Caret: -1,
	})

	preview := Primitive{
		Kind: KindLabel, Rect: s.Layout.Preview,
		Back: transparent, Fore: white,
		Text: s.Text, FontSize: Scaled(20, s.Layout.Scale), Align: constants.TextAlignLeft, Caret: s.Caret,
	}
	if s.Text == "" {
		preview.Text = s.Placeholder
		preview.Fore = white.WithAlpha(placeholderAlpha)
		preview.Caret = 0
	}
	out = append(out, preview)

	for _, h := range s.Layout.Hints {
		icon := h.Rect
		icon.W = icon.H
		out = append(out, Primitive{Kind: KindImage, Rect: icon, Image: hintImages[h.Kind], Fore: white, Caret: -1})

		text := h.Rect
		text.X += icon.W
		text.W -= icon.W
		out = append(out, Primitive{
			Kind: KindLabel, Rect: text, Fore: white,
			Text: s.Hints[h.Kind], FontSize: fontSize, Align: constants.TextAlignLeft, Caret: -1,
		})
	}

	out = a.appendCells(out, s, fontSize)
	a.cache = out
	return out
}

// appendCells draws one rect per cell with inner edges of merged runs
// removed, plus one label per run spanning all of its cells.
func (a *Assembler) appendCells(out []Primitive, s Scene, fontSize int) []Primitive {
	buffered := 0
	for i := range s.Grid.Cells {
		c := &s.Grid.Cells[i]
		x, y, w, h := c.X, c.Y, c.W, c.H

		var label *Primitive
		if c.Border.Has(grid.BorderLeft) {
			x++
			w--
			buffered = 0
		}
		if c.Border.Has(grid.BorderRight) {
			w--
			if s.Charset < len(c.Outputs) && len(c.Outputs[s.Charset]) > 0 {
				fore := normalFore
				if !c.Enabled {
					fore = disabledFore
				}
				offset := buffered * c.W
				label = &Primitive{
					Kind:        KindLabel,
					Rect:        Rect{c.X - offset, c.Y, offset + c.W, c.H},
					Fore:        fore,
					Text:        c.Output(s.Charset, s.Layer),
					FontSize:    fontSize,
					Align:       constants.TextAlignCenter,
					Caret:       -1,
					Pulse:       c.Selected,
					PulseOffset: a.pulseOffset,
					PulseStart:  a.pulseStart,
				}
			}
		}
		if c.Border.Has(grid.BorderTop) {
			y++
			h--
		}
		if c.Border.Has(grid.BorderBottom) {
			h--
		}
		buffered++

		bg := c.Tint
		if !c.Enabled {
			bg = disabledBack
		}
		out = append(out, Primitive{
			Kind:        KindRect,
			Rect:        Rect{x, y, w, h},
			Back:        bg,
			Caret:       -1,
			Pulse:       c.Selected,
			PulseOffset: a.pulseOffset,
			PulseStart:  a.pulseStart,
		})
		if label != nil {
			out = append(out, *label)
		}
	}
	return out
}

// ApplyAlpha returns a copy of prims with every color faded by alpha.
func ApplyAlpha(prims []Primitive, alpha float64) []Primitive {
	out := make([]Primitive, len(prims))
	for i, p := range prims {
		p.Back = p.Back.Fade(alpha)
		p.Fore = p.Fore.Fade(alpha)
		out[i] = p
	}
	return out
}
