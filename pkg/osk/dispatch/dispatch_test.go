package dispatch

import (
	"testing"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/BrandonKowalski/osk/pkg/osk/textbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	closed []Result
	steps  []bool
	moves  [][2]int
}

func (h *fakeHost) StepPanel(forward bool) { h.steps = append(h.steps, forward) }
func (h *fakeHost) MoveFrame(dx, dy int)   { h.moves = append(h.moves, [2]int{dx, dy}) }
func (h *fakeHost) Close(result Result)    { h.closed = append(h.closed, result) }

func key(outputs ...[]string) panel.Group {
	return panel.Group{Role: panel.RoleDefault, Span: 1, Action: panel.ActionAppend, Outputs: outputs}
}

func control(role panel.Role, action panel.Action, span int, label string) panel.Group {
	return panel.Group{Role: role, Span: span, Action: action, Outputs: [][]string{{label}, {label}}}
}

// a b c [space]
// sh cs bk ret
func testPanel() *panel.Panel {
	return &panel.Panel{
		Name: "dispatch", Rows: 2, Columns: 5, CellWidth: 10, CellHeight: 10,
		Layout: []panel.Group{
			key([]string{"a", "A"}, []string{"1", "!"}),
			key([]string{"b", "B"}, []string{"2", "@"}),
			key([]string{"c", "C"}, []string{"3", "#"}),
			control(panel.RoleSpace, panel.ActionSpace, 2, "Space"),
			control(panel.RoleShift, panel.ActionShift, 1, "Shift"),
			control(panel.RoleCharset, panel.ActionCharset, 1, "123"),
			control(panel.RoleDefault, panel.ActionBackspace, 2, "Back"),
			control(panel.RoleReturn, panel.ActionEnter, 1, "Enter"),
		},
	}
}

type fixture struct {
	d    *Dispatcher
	buf  *textbuf.Buffer
	host *fakeHost
	keys []KeyMessage
}

func newFixture(t *testing.T, prohibit grid.Prohibit, maxLength int, initial string) *fixture {
	t.Helper()
	g, err := grid.Build(testPanel(), prohibit)
	require.NoError(t, err)

	f := &fixture{buf: textbuf.New(maxLength, false), host: &fakeHost{}}
	f.buf.Replace(initial)
	f.d = New(grid.NewNavigator(g, 0), f.buf, f.host, Options{
		Prohibit: prohibit,
		OnKey:    func(m KeyMessage) { f.keys = append(f.keys, m) },
	})
	return f
}

func press(code KeyCode, mods Modifier) KeyEvent {
	return KeyEvent{Code: code, Modifiers: mods, Pressed: true}
}

func TestAcceptAppendsSelectedOutput(t *testing.T) {
	f := newFixture(t, 0, 16, "")

	out := f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, "a", f.buf.Text())
	assert.Equal(t, CueEnter, out.Cue)
	assert.True(t, out.ResetPulse)
	assert.True(t, out.TextChanged)
	assert.True(t, out.Dirty)

	f.d.HandleButton(constants.VirtualButtonSelect)
	f.d.HandleButton(constants.VirtualButtonRight)
	f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, "aB", f.buf.Text())
}

func TestAcceptRejectsWhenFull(t *testing.T) {
	f := newFixture(t, 0, 5, "abc")

	f.d.HandleKey(KeyEvent{Text: "b", Pressed: true})
	f.d.HandleKey(KeyEvent{Text: "C", Pressed: true})
	assert.Equal(t, "abcbC", f.buf.Text())
	assert.Equal(t, 5, f.buf.Caret())

	out := f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, CueReject, out.Cue)
	assert.False(t, out.TextChanged)
	assert.Equal(t, "abcbC", f.buf.Text())
	assert.Equal(t, 5, f.buf.Caret())
}

func TestButtonActions(t *testing.T) {
	f := newFixture(t, 0, 16, "xy")

	out := f.d.HandleButton(constants.VirtualButtonX)
	assert.Equal(t, "xy ", f.buf.Text())
	assert.Equal(t, CueCursor, out.Cue)

	f.d.HandleButton(constants.VirtualButtonB)
	f.d.HandleButton(constants.VirtualButtonB)
	assert.Equal(t, "x", f.buf.Text())

	f.d.HandleButton(constants.VirtualButtonL1)
	assert.Equal(t, 0, f.buf.Caret())
	f.d.HandleButton(constants.VirtualButtonR1)
	assert.Equal(t, 1, f.buf.Caret())

	f.d.HandleButton(constants.VirtualButtonL2)
	f.d.HandleButton(constants.VirtualButtonR2)
	assert.Equal(t, []bool{false, true}, f.host.steps)

	out = f.d.HandleButton(constants.VirtualButtonY)
	assert.Equal(t, CueCancel, out.Cue)
	out = f.d.HandleButton(constants.VirtualButtonStart)
	assert.Equal(t, CueEnter, out.Cue)
	assert.Equal(t, []Result{ResultCancel, ResultConfirm}, f.host.closed)
}

func TestShiftAndCharsetButtons(t *testing.T) {
	f := newFixture(t, 0, 16, "")
	nav := f.d.Navigator()

	f.d.HandleButton(constants.VirtualButtonSelect)
	assert.Equal(t, "A", nav.CurrentOutput())
	f.d.HandleButton(constants.VirtualButtonMenu)
	assert.Equal(t, 1, nav.Charset())
	assert.Equal(t, "!", nav.CurrentOutput())
	f.d.HandleButton(constants.VirtualButtonSelect)
	assert.Equal(t, "1", nav.CurrentOutput())
}

func TestAcceptControlRuns(t *testing.T) {
	f := newFixture(t, 0, 16, "ab")
	nav := f.d.Navigator()

	nav.SelectIndex(3)
	f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, "ab ", f.buf.Text())

	nav.SelectIndex(7)
	f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, "ab", f.buf.Text())

	nav.SelectIndex(9)
	f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, "ab\n", f.buf.Text())

	nav.SelectIndex(5)
	f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, 1, nav.Layer())

	nav.SelectIndex(6)
	f.d.HandleButton(constants.VirtualButtonA)
	assert.Equal(t, 1, nav.Charset())
	assert.Empty(t, f.host.closed)
}

func TestProhibitedSpace(t *testing.T) {
	f := newFixture(t, grid.NoSpace, 16, "a")

	out := f.d.HandleButton(constants.VirtualButtonX)
	assert.Equal(t, CueReject, out.Cue)
	assert.Equal(t, "a", f.buf.Text())

	out = f.d.HandleKey(press(KeySpace, 0))
	assert.Equal(t, CueReject, out.Cue)
	assert.Equal(t, "a", f.buf.Text())
}

func TestDirectionalButtons(t *testing.T) {
	f := newFixture(t, 0, 16, "")

	out := f.d.HandleButton(constants.VirtualButtonRight)
	assert.Equal(t, CueCursor, out.Cue)
	assert.True(t, out.ResetPulse)
	assert.Equal(t, 1, f.d.Navigator().Index())

	out = f.d.HandleButton(constants.VirtualButtonUp)
	assert.Equal(t, CueCursor, out.Cue)
	assert.Equal(t, 1, f.d.Navigator().Index())

	f.d.HandleButton(constants.VirtualButtonDown)
	assert.Equal(t, 6, f.d.Navigator().Index())
}

func TestFrameMoves(t *testing.T) {
	f := newFixture(t, 0, 16, "")
	for _, b := range []constants.VirtualButton{
		constants.VirtualButtonRSLeft, constants.VirtualButtonRSRight,
		constants.VirtualButtonRSUp, constants.VirtualButtonRSDown,
	} {
		out := f.d.HandleButton(b)
		assert.Equal(t, CueNone, out.Cue)
	}
	assert.Equal(t, [][2]int{{-5, 0}, {5, 0}, {0, -5}, {0, 5}}, f.host.moves)

	f = newFixture(t, grid.NoInputAnalog, 16, "")
	f.d.HandleButton(constants.VirtualButtonRSLeft)
	assert.Empty(t, f.host.moves)
}

func TestUnmappedAndGatedInput(t *testing.T) {
	f := newFixture(t, 0, 16, "")

	assert.Equal(t, Outcome{}, f.d.HandleButton(constants.VirtualButtonUnassigned))
	assert.Equal(t, Outcome{}, f.d.HandleKey(press(KeyTab, 0)))

	f.d.EnableButtons(false)
	assert.Equal(t, Outcome{}, f.d.HandleButton(constants.VirtualButtonA))
	f.d.EnableButtons(true)

	f.d.EnableKeys(false)
	assert.Equal(t, Outcome{}, f.d.HandleKey(press(KeyA, 0)))
	f.d.EnableKeys(true)

	f.d.IgnoreInput(true)
	assert.Equal(t, Outcome{}, f.d.HandleButton(constants.VirtualButtonA))
	assert.Equal(t, Outcome{}, f.d.HandleKey(press(KeyA, 0)))
	f.d.IgnoreInput(false)

	assert.Equal(t, Outcome{}, f.d.HandleKey(KeyEvent{Code: KeyA}), "releases are ignored")
	assert.Empty(t, f.buf.Text())
}

func TestKeyMatchesPanelOutput(t *testing.T) {
	f := newFixture(t, 0, 16, "")

	f.d.HandleKey(press(KeyB, 0))
	f.d.HandleKey(press(KeyC, ModLeftShift))
	f.d.HandleKey(press(Key1, ModRightShift))
	assert.Equal(t, "bC!", f.buf.Text())

	assert.Equal(t, []KeyMessage{
		{Code: KeyB},
		{Code: KeyC, Modifiers: ModLeftShift},
		{Code: Key1, Modifiers: ModRightShift},
	}, f.keys)
}

func TestKeyFallbackTable(t *testing.T) {
	f := newFixture(t, 0, 16, "abc")

	f.d.HandleKey(press(KeyLeft, 0))
	f.d.HandleKey(press(KeyLeft, 0))
	assert.Equal(t, 1, f.buf.Caret())

	f.d.HandleKey(press(KeyDelete, 0))
	assert.Equal(t, "ac", f.buf.Text())

	f.d.HandleKey(press(KeyRight, 0))
	f.d.HandleKey(press(KeyBackspace, 0))
	assert.Equal(t, "a", f.buf.Text())

	f.d.HandleKey(press(KeyUp, 0))
	f.d.HandleKey(press(KeyDown, 0))
	assert.Equal(t, 1, f.buf.Caret())

	f.d.HandleKey(press(KeySpace, 0))
	f.d.HandleKey(press(KeyEnter, 0))
	assert.Equal(t, "a \n", f.buf.Text())
	assert.Empty(t, f.host.closed)

	out := f.d.HandleKey(press(KeyEscape, 0))
	assert.Equal(t, CueCancel, out.Cue)
	assert.Equal(t, []Result{ResultCancel}, f.host.closed)
	assert.Len(t, f.keys, 10)
}

func TestEnterWithNoReturnConfirms(t *testing.T) {
	f := newFixture(t, grid.NoReturn, 16, "done")

	out := f.d.HandleKey(press(KeyEnter, 0))
	assert.Equal(t, []Result{ResultConfirm}, f.host.closed)
	assert.Equal(t, CueEnter, out.Cue)
	assert.Equal(t, "done", f.buf.Text())
}

func TestTextFallbackOnlyMatches(t *testing.T) {
	f := newFixture(t, 0, 16, "")

	f.d.HandleKey(KeyEvent{Text: "@", Pressed: true})
	assert.Equal(t, "@", f.buf.Text())

	out := f.d.HandleKey(KeyEvent{Text: "z", Pressed: true})
	assert.False(t, out.Handled)

	f.d.HandleKey(KeyEvent{Text: "?", Code: KeyEscape, Pressed: true})
	assert.Empty(t, f.host.closed, "text events never reach the key table")
	assert.Equal(t, "@", f.buf.Text())
	assert.Empty(t, f.keys)
}
