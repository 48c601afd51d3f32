package present

import "math"

const (
	VirtualWidth  = 1280
	VirtualHeight = 720

	// ScreenMargin keeps the frame this far from every screen edge.
	ScreenMargin = 50
)

type Rect struct {
	X, Y, W, H int
}

type XAlign int

const (
	XAlignLeft XAlign = iota
	XAlignCenter
	XAlignRight
)

type YAlign int

const (
	YAlignTop YAlign = iota
	YAlignCenter
	YAlignBottom
)

// HintKind names the hint buttons drawn under the frame.
type HintKind int

const (
	HintCancel HintKind = iota
	HintSpace
	HintBackspace
	HintShift
	HintAccept
)

type Hint struct {
	Kind HintKind
	Rect Rect
}

type LayoutParams struct {
	Columns, Rows         int
	CellWidth, CellHeight int
	Scale                 float64
	NoReturn              bool
	AlignX                XAlign
	AlignY                YAlign
	OffsetX, OffsetY      int
	ScreenW, ScreenH      int
}

// Layout is the placement of every chrome element on the virtual screen.
type Layout struct {
	Screen  Rect
	Frame   Rect
	Title   Rect
	Preview Rect
	Grid    Rect
	CellW   int
	CellH   int
	Hints   []Hint
	// Scale is kept so text sizes can be derived from the same factor.
	Scale float64
}

// Scaled multiplies a base size by the scale factor.
func Scaled(v int, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Round(float64(v) * scale))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Position aligns the frame on the screen and applies the initial offset.
func Position(lp LayoutParams) (x, y int) {
	w, h := lp.frameSize()
	switch lp.AlignX {
	case XAlignRight:
		x = lp.screenW()
	case XAlignCenter:
		x = (lp.screenW() - w) / 2
	}
	switch lp.AlignY {
	case YAlignBottom:
		y = lp.screenH()
	case YAlignCenter:
		y = (lp.screenH() - h) / 2
	}
	return x + lp.OffsetX, y + lp.OffsetY
}

func (lp LayoutParams) screenW() int {
	if lp.ScreenW <= 0 {
		return VirtualWidth
	}
	return lp.ScreenW
}

func (lp LayoutParams) screenH() int {
	if lp.ScreenH <= 0 {
		return VirtualHeight
	}
	return lp.ScreenH
}

func (lp LayoutParams) titleHeight() int {
	return Scaled(30, lp.Scale)
}

func (lp LayoutParams) previewHeight() int {
	if lp.NoReturn {
		return Scaled(40, lp.Scale)
	}
	return Scaled(90, lp.Scale)
}

func (lp LayoutParams) frameSize() (w, h int) {
	cw, ch := Scaled(lp.CellWidth, lp.Scale), Scaled(lp.CellHeight, lp.Scale)
	return lp.Columns * cw, lp.Rows*ch + lp.titleHeight() + lp.previewHeight()
}

// Compute lays the dialog out with its frame at (x, y) after clamping that
// position into the screen margins. The clamped position is returned in Frame.
func Compute(lp LayoutParams, x, y int) Layout {
	cw, ch := Scaled(lp.CellWidth, lp.Scale), Scaled(lp.CellHeight, lp.Scale)
	frameW, frameH := lp.frameSize()
	titleH, previewH := lp.titleHeight(), lp.previewHeight()
	buttonMargin, buttonH := Scaled(30, lp.Scale), Scaled(30, lp.Scale)

	x = clamp(x, ScreenMargin, lp.screenW()-frameW-ScreenMargin)
	y = clamp(y, ScreenMargin, lp.screenH()-(frameH+buttonH+buttonMargin)-ScreenMargin)

	l := Layout{
		Screen:  Rect{0, 0, lp.screenW(), lp.screenH()},
		Frame:   Rect{x, y, frameW, frameH},
		Title:   Rect{x, y, frameW, titleH},
		Preview: Rect{x, y + titleH, frameW, previewH},
		Grid:    Rect{x, y + titleH + previewH, frameW, lp.Rows * ch},
		CellW:   cw,
		CellH:   ch,
		Scale:   lp.Scale,
	}

	hintY := y + frameH + buttonMargin
	for _, h := range []struct {
		kind   HintKind
		offset int
		width  int
	}{
		{HintCancel, 0, 100},
		{HintSpace, 100, 100},
		{HintBackspace, 200, 120},
		{HintShift, 320, 80},
		{HintAccept, 400, 100},
	} {
		l.Hints = append(l.Hints, Hint{
			Kind: h.kind,
			Rect: Rect{x + Scaled(h.offset, lp.Scale), hintY, Scaled(h.width, lp.Scale), buttonH},
		})
	}
	return l
}
