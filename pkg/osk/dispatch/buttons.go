package dispatch

import (
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
)

// HandleButton applies one discrete button press.
//
//	A       accept the selected key
//	B       backspace
//	X       space
//	Y       cancel
//	Start   confirm
//	Select  shift layer
//	Menu    charset
//	L1/R1   caret left/right
//	L2/R2   previous/next panel
//	RS      move the dialog frame
func (d *Dispatcher) HandleButton(button constants.VirtualButton) Outcome {
	if !d.buttonsEnabled.Load() || d.ignore.Load() {
		return Outcome{}
	}

	var out Outcome
	cursorCue := true

	switch button {
	case constants.VirtualButtonL1:
		out = d.moveCaret(grid.Left)
	case constants.VirtualButtonR1:
		out = d.moveCaret(grid.Right)

	case constants.VirtualButtonUp:
		out = d.moveSelection(grid.Up)
	case constants.VirtualButtonDown:
		out = d.moveSelection(grid.Down)
	case constants.VirtualButtonLeft:
		out = d.moveSelection(grid.Left)
	case constants.VirtualButtonRight:
		out = d.moveSelection(grid.Right)

	case constants.VirtualButtonSelect:
		d.nav.CycleShift()
		out = Outcome{Handled: true, Dirty: true}
	case constants.VirtualButtonMenu:
		d.nav.CycleCharset()
		out = Outcome{Handled: true, Dirty: true}

	case constants.VirtualButtonX:
		out = d.space()
	case constants.VirtualButtonB:
		out = d.backspace()

	case constants.VirtualButtonStart:
		d.host.Close(ResultConfirm)
		out = Outcome{Handled: true, Cue: CueEnter}
		cursorCue = false

	case constants.VirtualButtonA:
		out = d.accept()
		out.ResetPulse = true
		if out.Cue == CueNone {
			out.Cue = CueEnter
		}
		cursorCue = false

	case constants.VirtualButtonY:
		d.host.Close(ResultCancel)
		out = Outcome{Handled: true, Cue: CueCancel}
		cursorCue = false

	case constants.VirtualButtonL2:
		d.host.StepPanel(false)
		out = Outcome{Handled: true, Dirty: true}
	case constants.VirtualButtonR2:
		d.host.StepPanel(true)
		out = Outcome{Handled: true, Dirty: true}

	case constants.VirtualButtonRSLeft, constants.VirtualButtonRSRight,
		constants.VirtualButtonRSUp, constants.VirtualButtonRSDown:
		out = d.moveFrame(button)
		cursorCue = false

	default:
		logging.For("dispatch").Debug("Unmapped button", "button", button.GetName())
		return Outcome{}
	}

	if cursorCue && out.Cue == CueNone {
		out.Cue = CueCursor
	}
	if out.ResetPulse {
		out.Dirty = true
	}
	return out
}

func (d *Dispatcher) moveSelection(dir grid.Direction) Outcome {
	moved := d.nav.Move(dir)
	return Outcome{Handled: true, Dirty: moved, ResetPulse: true}
}

func (d *Dispatcher) moveFrame(button constants.VirtualButton) Outcome {
	if d.prohibit.Has(grid.NoInputAnalog) {
		return Outcome{Handled: true}
	}

	switch button {
	case constants.VirtualButtonRSLeft:
		d.host.MoveFrame(-FrameStep, 0)
	case constants.VirtualButtonRSRight:
		d.host.MoveFrame(FrameStep, 0)
	case constants.VirtualButtonRSUp:
		d.host.MoveFrame(0, -FrameStep)
	case constants.VirtualButtonRSDown:
		d.host.MoveFrame(0, FrameStep)
	}
	return Outcome{Handled: true, Dirty: true}
}
