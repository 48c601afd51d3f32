// Package dispatch turns button presses and physical key events into grid
// navigation, text edits and dialog actions.
package dispatch

import (
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/BrandonKowalski/osk/pkg/osk/textbuf"
	"go.uber.org/atomic"
)

// Cue is the audible feedback an action asks for.
type Cue int

const (
	CueNone Cue = iota
	CueCursor
	CueEnter
	CueCancel
	CueReject
)

func (c Cue) String() string {
	switch c {
	case CueCursor:
		return "cursor"
	case CueEnter:
		return "enter"
	case CueCancel:
		return "cancel"
	case CueReject:
		return "reject"
	}
	return "none"
}

// Result is how a dialog was closed.
type Result int

const (
	ResultConfirm Result = iota
	ResultCancel
)

func (r Result) String() string {
	if r == ResultCancel {
		return "cancel"
	}
	return "confirm"
}

// FrameStep is how far one analog move shifts the dialog frame.
const FrameStep = 5

// Host is the dialog the dispatcher acts on for anything beyond the grid and buffer.
type Host interface {
	StepPanel(forward bool)
	MoveFrame(dx, dy int)
	Close(result Result)
}

// Outcome reports what a handled event changed.
type Outcome struct {
	Handled     bool
	Dirty       bool
	ResetPulse  bool
	TextChanged bool
	Cue         Cue
}

type Options struct {
	Prohibit grid.Prohibit
	Resolver KeyResolver
	// OnKey receives every key coded event after it has been handled.
	OnKey func(KeyMessage)
}

type Dispatcher struct {
	nav      *grid.Navigator
	buf      *textbuf.Buffer
	host     Host
	prohibit grid.Prohibit
	resolver KeyResolver
	onKey    func(KeyMessage)

	buttonsEnabled *atomic.Bool
	keysEnabled    *atomic.Bool
	ignore         *atomic.Bool
}

func New(nav *grid.Navigator, buf *textbuf.Buffer, host Host, opts Options) *Dispatcher {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = USLayout{}
	}
	return &Dispatcher{
		nav:            nav,
		buf:            buf,
		host:           host,
		prohibit:       opts.Prohibit,
		resolver:       resolver,
		onKey:          opts.OnKey,
		buttonsEnabled: atomic.NewBool(true),
		keysEnabled:    atomic.NewBool(true),
		ignore:         atomic.NewBool(false),
	}
}

// SetNavigator swaps the grid selection after a panel change.
func (d *Dispatcher) SetNavigator(nav *grid.Navigator) {
	d.nav = nav
}

func (d *Dispatcher) Navigator() *grid.Navigator {
	return d.nav
}

func (d *Dispatcher) EnableButtons(enabled bool) {
	d.buttonsEnabled.Store(enabled)
}

func (d *Dispatcher) EnableKeys(enabled bool) {
	d.keysEnabled.Store(enabled)
}

// IgnoreInput drops every event on both channels while set.
func (d *Dispatcher) IgnoreInput(ignore bool) {
	d.ignore.Store(ignore)
}

func (d *Dispatcher) Ignoring() bool {
	return d.ignore.Load()
}

// accept runs the selected run's action with its output at the active charset
// and layer.
func (d *Dispatcher) accept() Outcome {
	cell := d.nav.Current()
	if cell == nil {
		return Outcome{Handled: true}
	}
	charset := d.nav.Charset()
	if charset >= len(cell.Outputs) || len(cell.Outputs[charset]) == 0 {
		return Outcome{Handled: true}
	}
	return d.activate(cell, cell.Output(charset, d.nav.Layer()))
}

func (d *Dispatcher) activate(cell *grid.Cell, s string) Outcome {
	switch cell.Action {
	case panel.ActionShift:
		d.nav.CycleShift()
		return Outcome{Handled: true, Dirty: true}
	case panel.ActionCharset:
		d.nav.CycleCharset()
		return Outcome{Handled: true, Dirty: true}
	case panel.ActionSpace:
		return d.space()
	case panel.ActionBackspace:
		return d.backspace()
	case panel.ActionEnter:
		return d.enter()
	default:
		return d.appendText(s)
	}
}

// appendText is the default accept: insert s unless it would overflow the buffer.
func (d *Dispatcher) appendText(s string) Outcome {
	if s == "" {
		return Outcome{Handled: true}
	}
	if !d.buf.Insert(s) {
		logging.For("dispatch").Debug("Rejected insert past max length", "max", d.buf.MaxLength())
		return Outcome{Handled: true, Cue: CueReject}
	}
	return Outcome{Handled: true, Dirty: true, TextChanged: true}
}

func (d *Dispatcher) space() Outcome {
	if d.prohibit.Has(grid.NoSpace) {
		return Outcome{Handled: true, Cue: CueReject}
	}
	return d.appendText(" ")
}

func (d *Dispatcher) enter() Outcome {
	if d.prohibit.Has(grid.NoReturn) {
		return Outcome{Handled: true, Cue: CueReject}
	}
	return d.appendText("\n")
}

func (d *Dispatcher) backspace() Outcome {
	changed := d.buf.Erase()
	return Outcome{Handled: true, Dirty: true, TextChanged: changed}
}

func (d *Dispatcher) deleteForward() Outcome {
	changed := d.buf.Delete()
	return Outcome{Handled: true, Dirty: true, TextChanged: changed}
}

func (d *Dispatcher) moveCaret(dir grid.Direction) Outcome {
	d.buf.MoveCaret(dir)
	return Outcome{Handled: true, Dirty: true}
}
