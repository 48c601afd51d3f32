package present

import (
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T, prohibit grid.Prohibit) *grid.Grid {
	t.Helper()
	p := &panel.Panel{
		Name: "present", Rows: 1, Columns: 4, CellWidth: 10, CellHeight: 10,
		Layout: []panel.Group{
			{Role: panel.RoleDefault, Span: 1, Tint: panel.DefaultTint, Outputs: [][]string{{"a", "A"}}},
			{Role: panel.RoleSpace, Span: 2, Tint: panel.SpecialTint, Action: panel.ActionSpace, Outputs: [][]string{{"Space"}}},
			{Role: panel.RoleReturn, Span: 1, Tint: panel.Special2Tint, Action: panel.ActionEnter, Outputs: [][]string{{"Enter"}}},
		},
	}
	g, err := grid.Build(p, prohibit)
	require.NoError(t, err)
	return g
}

func testScene(g *grid.Grid) Scene {
	lp := LayoutParams{Columns: g.Columns, Rows: g.Rows, CellWidth: 10, CellHeight: 10, Scale: 1}
	x, y := Position(lp)
	l := Compute(lp, x, y)
	g.Place(l.Grid.X, l.Grid.Y, l.CellW, l.CellH)
	return Scene{
		Layout:      l,
		Grid:        g,
		Title:       "Title",
		Placeholder: "Enter text",
		BaseTint:    constants.HexToColor(0x202020),
		Hints:       map[HintKind]string{HintCancel: "Cancel", HintAccept: "Accept"},
		Now:         time.Unix(100, 0),
	}
}

func cellPrimitives(prims []Primitive) []Primitive {
	// background, frame, title, preview and two primitives per hint precede the cells
	return prims[4+2*5:]
}

func TestCompileOrderAndCells(t *testing.T) {
	g := testGrid(t, grid.NoReturn)
	grid.NewNavigator(g, 1)
	s := testScene(g)

	prims := NewAssembler().Compile(s)
	require.Len(t, prims, 4+10+4+3)

	assert.Equal(t, KindRect, prims[0].Kind)
	assert.Equal(t, s.Layout.Screen, prims[0].Rect)
	assert.Equal(t, uint8(0), prims[0].Back.A)
	assert.Equal(t, s.Layout.Frame, prims[1].Rect)
	assert.Equal(t, "Title", prims[2].Text)
	assert.Equal(t, KindImage, prims[4].Kind)
	assert.Equal(t, ImageButtonY, prims[4].Image)
	assert.Equal(t, "Cancel", prims[5].Text)

	cells := cellPrimitives(prims)
	a, aLabel := cells[0], cells[1]
	assert.Equal(t, KindRect, a.Kind)
	assert.Equal(t, Rect{g.Cells[0].X + 1, g.Cells[0].Y + 1, 8, 8}, a.Rect)
	assert.Equal(t, "a", aLabel.Text)
	assert.Equal(t, Rect{g.Cells[0].X, g.Cells[0].Y, 10, 10}, aLabel.Rect)

	spaceStart, spaceEnd, spaceLabel := cells[2], cells[3], cells[4]
	assert.Equal(t, Rect{g.Cells[1].X + 1, g.Cells[1].Y + 1, 9, 8}, spaceStart.Rect)
	assert.Equal(t, Rect{g.Cells[2].X, g.Cells[2].Y + 1, 9, 8}, spaceEnd.Rect)
	assert.Equal(t, KindLabel, spaceLabel.Kind)
	assert.Equal(t, Rect{g.Cells[1].X, g.Cells[1].Y, 20, 10}, spaceLabel.Rect)
	assert.Equal(t, "Space", spaceLabel.Text)
	assert.True(t, spaceStart.Pulse)
	assert.True(t, spaceEnd.Pulse)
	assert.True(t, spaceLabel.Pulse)
	assert.False(t, a.Pulse)

	ret, retLabel := cells[5], cells[6]
	assert.Equal(t, disabledBack, ret.Back)
	assert.Equal(t, disabledFore, retLabel.Fore)
	assert.Equal(t, normalFore, spaceLabel.Fore)
	assert.Equal(t, panel.SpecialTint, spaceStart.Back)
}

func TestCompileIsCachedUntilInvalidated(t *testing.T) {
	g := testGrid(t, 0)
	grid.NewNavigator(g, 0)
	s := testScene(g)

	a := NewAssembler()
	first := a.Compile(s)
	assert.False(t, a.Dirty())

	s.Title = "Changed"
	assert.Equal(t, "Title", a.Compile(s)[2].Text)

	a.Invalidate()
	assert.True(t, a.Dirty())
	assert.Equal(t, "Changed", a.Compile(s)[2].Text)
	assert.Len(t, first, len(a.Compile(s)))
}

func TestPreviewPlaceholderAndDimmer(t *testing.T) {
	g := testGrid(t, 0)
	grid.NewNavigator(g, 0)
	s := testScene(g)
	s.Dimmer = true

	prims := NewAssembler().Compile(s)
	assert.Equal(t, uint8(204), prims[0].Back.A)
	assert.Equal(t, "Enter text", prims[3].Text)
	assert.Equal(t, uint8(128), prims[3].Fore.A)
	assert.Equal(t, 0, prims[3].Caret)

	s.Text = "abc"
	s.Caret = 2
	a := NewAssembler()
	prims = a.Compile(s)
	assert.Equal(t, "abc", prims[3].Text)
	assert.Equal(t, uint8(255), prims[3].Fore.A)
	assert.Equal(t, 2, prims[3].Caret)
}

func TestPulseReset(t *testing.T) {
	g := testGrid(t, 0)
	grid.NewNavigator(g, 0)
	s := testScene(g)

	a := NewAssembler()
	first := cellPrimitives(a.Compile(s))[0]
	assert.Equal(t, PulseResetOffset, first.PulseOffset)
	assert.Equal(t, s.Now, first.PulseStart)

	s.Now = s.Now.Add(time.Second)
	a.Invalidate()
	assert.Equal(t, time.Unix(100, 0), cellPrimitives(a.Compile(s))[0].PulseStart, "no reset keeps the phase")

	s.ResetPulse = true
	a.Invalidate()
	assert.Equal(t, s.Now, cellPrimitives(a.Compile(s))[0].PulseStart)
}

func TestApplyAlpha(t *testing.T) {
	prims := []Primitive{{Back: constants.Color{A: 255}, Fore: constants.Color{A: 128}}}
	faded := ApplyAlpha(prims, 0.5)
	assert.Equal(t, uint8(128), faded[0].Back.A)
	assert.Equal(t, uint8(64), faded[0].Fore.A)
	assert.Equal(t, uint8(255), prims[0].Back.A, "input is untouched")
}

func TestLayout(t *testing.T) {
	lp := LayoutParams{Columns: 10, Rows: 5, CellWidth: 50, CellHeight: 40, Scale: 1, AlignX: XAlignCenter, AlignY: YAlignCenter}
	x, y := Position(lp)
	assert.Equal(t, (1280-500)/2, x)
	assert.Equal(t, (720-320)/2, y)

	l := Compute(lp, x, y)
	assert.Equal(t, Rect{390, 200, 500, 320}, l.Frame)
	assert.Equal(t, Rect{390, 200, 500, 30}, l.Title)
	assert.Equal(t, Rect{390, 230, 500, 90}, l.Preview)
	assert.Equal(t, Rect{390, 320, 500, 200}, l.Grid)
	require.Len(t, l.Hints, 5)
	assert.Equal(t, Rect{390, 550, 100, 30}, l.Hints[0].Rect)
	assert.Equal(t, Rect{790, 550, 100, 30}, l.Hints[4].Rect)

	lp.NoReturn = true
	assert.Equal(t, 40, Compute(lp, x, y).Preview.H)

	clamped := Compute(lp, 0, 10000)
	assert.Equal(t, ScreenMargin, clamped.Frame.X)
	assert.Equal(t, 720-ScreenMargin-30-30-clamped.Frame.H, clamped.Frame.Y)

	lp.Scale = 2
	scaled := Compute(lp, 0, 0)
	assert.Equal(t, 1000, scaled.Frame.W)
	assert.Equal(t, 60, scaled.Title.H)
	assert.Equal(t, 100, scaled.CellW)
}

func TestFade(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFade(0)

	calls := 0
	f.Start(0, 1, FadeDuration, start, func() { calls++ })
	assert.True(t, f.Active())
	assert.InDelta(t, 0.5, f.Tick(start.Add(250*time.Millisecond)), 1e-9)
	assert.Equal(t, 0, calls)

	assert.Equal(t, 1.0, f.Tick(start.Add(time.Second)))
	assert.Equal(t, 1.0, f.Tick(start.Add(2*time.Second)))
	assert.Equal(t, 1, calls)
	assert.False(t, f.Active())
	assert.Equal(t, 1.0, f.Alpha())
}

func TestFadeFinishJumpsToEnd(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFade(1)

	calls := 0
	f.Start(1, 0, FadeDuration, start, func() { calls++ })
	f.Finish()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0.0, f.Alpha())
	assert.False(t, f.Active())

	f.Finish()
	assert.Equal(t, 0.0, f.Tick(start.Add(time.Second)))
	assert.Equal(t, 1, calls)
}

func TestFadeFinishesOnceUnderConcurrentTicks(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFade(1)

	var mu sync.Mutex
	calls := 0
	f.Start(1, 0, FadeDuration, start, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Tick(start.Add(time.Second))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0.0, f.Alpha())
}

func TestPulseFactor(t *testing.T) {
	start := time.Unix(100, 0)

	reset := PulseFactor(start, PulseResetOffset, start)
	assert.Greater(t, reset, 0.0)
	assert.Less(t, reset, 0.5)
	assert.Less(t, PulseFactor(start, PulseResetOffset, start.Add(50*time.Millisecond)), reset, "falls after a reset")

	assert.InDelta(t, reset, PulseFactor(start, PulseResetOffset, start.Add(PulsePeriod)), 1e-9)
	assert.InDelta(t, 1.0, PulseFactor(start, 0.25, start), 1e-9)
}

func TestPulseAlpha(t *testing.T) {
	now := time.Unix(100, 0)
	assert.Equal(t, 1.0, Primitive{}.PulseAlpha(now))

	p := Primitive{Pulse: true, PulseStart: now, PulseOffset: 0.75}
	assert.InDelta(t, 0.5, p.PulseAlpha(now), 1e-9)
}
