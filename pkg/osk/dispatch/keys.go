package dispatch

import (
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
)

// KeyEvent is one physical key transition. Text, when set, is a character the
// source already resolved and Code is ignored for matching.
type KeyEvent struct {
	LED       LED
	Modifiers Modifier
	Code      KeyCode
	Text      string
	Pressed   bool
}

// KeyMessage is the raw triple echoed to the host after a key coded event.
type KeyMessage struct {
	LED       LED
	Modifiers Modifier
	Code      KeyCode
}

// HandleKey applies a key press. A key whose character matches a key on the
// panel activates it; otherwise a fixed table handles editing and control keys.
func (d *Dispatcher) HandleKey(ev KeyEvent) Outcome {
	if !ev.Pressed || !d.keysEnabled.Load() || d.ignore.Load() {
		return Outcome{}
	}

	useTextFallback := ev.Text != ""
	text := ev.Text
	if !useTextFallback {
		if r, ok := d.resolver.Resolve(ev.Code, ev.Modifiers, ev.LED); ok {
			text = string(r)
		}
	}

	out, found := d.matchKey(text)
	if useTextFallback {
		return out
	}

	if !found {
		out = d.specialKey(ev.Code)
	}

	if d.onKey != nil {
		d.onKey(KeyMessage{LED: ev.LED, Modifiers: ev.Modifiers, Code: ev.Code})
	}
	return out
}

// matchKey activates the first enabled run whose output equals text, preferring
// the active charset and layer.
func (d *Dispatcher) matchKey(text string) (Outcome, bool) {
	if text == "" {
		return Outcome{}, false
	}
	g := d.nav.Grid()

	for i := range g.Cells {
		cell := &g.Cells[i]
		if cell.Border.Has(grid.BorderLeft) && cell.Enabled && d.nav.CellOutput(i) == text {
			return d.activate(cell, text), true
		}
	}

	for i := range g.Cells {
		cell := &g.Cells[i]
		if !cell.Border.Has(grid.BorderLeft) || !cell.Enabled {
			continue
		}
		for _, layers := range cell.Outputs {
			for _, s := range layers {
				if s == text {
					return d.activate(cell, text), true
				}
			}
		}
	}
	return Outcome{}, false
}

func (d *Dispatcher) specialKey(code KeyCode) Outcome {
	switch code {
	case KeySpace:
		return d.space()
	case KeyBackspace:
		return d.backspace()
	case KeyDelete:
		return d.deleteForward()
	case KeyEscape:
		d.host.Close(ResultCancel)
		return Outcome{Handled: true, Cue: CueCancel}
	case KeyRight:
		return d.moveCaret(grid.Right)
	case KeyLeft:
		return d.moveCaret(grid.Left)
	case KeyDown:
		return d.moveCaret(grid.Down)
	case KeyUp:
		return d.moveCaret(grid.Up)
	case KeyEnter, KeypadEnter:
		if d.prohibit.Has(grid.NoReturn) {
			d.host.Close(ResultConfirm)
			return Outcome{Handled: true, Cue: CueEnter}
		}
		return d.appendText("\n")
	}

	logging.For("dispatch").Debug("Unmapped key", "code", uint16(code))
	return Outcome{}
}
