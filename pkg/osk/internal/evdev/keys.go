//go:build linux

package evdev

import (
	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	goevdev "github.com/holoplot/go-evdev"
)

var letterCodes = []goevdev.EvCode{
	goevdev.KEY_A, goevdev.KEY_B, goevdev.KEY_C, goevdev.KEY_D, goevdev.KEY_E, goevdev.KEY_F,
	goevdev.KEY_G, goevdev.KEY_H, goevdev.KEY_I, goevdev.KEY_J, goevdev.KEY_K, goevdev.KEY_L,
	goevdev.KEY_M, goevdev.KEY_N, goevdev.KEY_O, goevdev.KEY_P, goevdev.KEY_Q, goevdev.KEY_R,
	goevdev.KEY_S, goevdev.KEY_T, goevdev.KEY_U, goevdev.KEY_V, goevdev.KEY_W, goevdev.KEY_X,
	goevdev.KEY_Y, goevdev.KEY_Z,
}

var digitCodes = []goevdev.EvCode{
	goevdev.KEY_1, goevdev.KEY_2, goevdev.KEY_3, goevdev.KEY_4, goevdev.KEY_5,
	goevdev.KEY_6, goevdev.KEY_7, goevdev.KEY_8, goevdev.KEY_9, goevdev.KEY_0,
}

var keypadCodes = []goevdev.EvCode{
	goevdev.KEY_KP1, goevdev.KEY_KP2, goevdev.KEY_KP3, goevdev.KEY_KP4, goevdev.KEY_KP5,
	goevdev.KEY_KP6, goevdev.KEY_KP7, goevdev.KEY_KP8, goevdev.KEY_KP9, goevdev.KEY_KP0,
}

var fixedCodes = map[goevdev.EvCode]dispatch.KeyCode{
	goevdev.KEY_ENTER:      dispatch.KeyEnter,
	goevdev.KEY_ESC:        dispatch.KeyEscape,
	goevdev.KEY_BACKSPACE:  dispatch.KeyBackspace,
	goevdev.KEY_TAB:        dispatch.KeyTab,
	goevdev.KEY_SPACE:      dispatch.KeySpace,
	goevdev.KEY_MINUS:      dispatch.KeyMinus,
	goevdev.KEY_EQUAL:      dispatch.KeyEqual,
	goevdev.KEY_LEFTBRACE:  dispatch.KeyLeftBracket,
	goevdev.KEY_RIGHTBRACE: dispatch.KeyRightBracket,
	goevdev.KEY_BACKSLASH:  dispatch.KeyBackslash,
	goevdev.KEY_SEMICOLON:  dispatch.KeySemicolon,
	goevdev.KEY_APOSTROPHE: dispatch.KeyApostrophe,
	goevdev.KEY_GRAVE:      dispatch.KeyGrave,
	goevdev.KEY_COMMA:      dispatch.KeyComma,
	goevdev.KEY_DOT:        dispatch.KeyDot,
	goevdev.KEY_SLASH:      dispatch.KeySlash,
	goevdev.KEY_CAPSLOCK:   dispatch.KeyCapsLock,
	goevdev.KEY_DELETE:     dispatch.KeyDelete,
	goevdev.KEY_RIGHT:      dispatch.KeyRight,
	goevdev.KEY_LEFT:       dispatch.KeyLeft,
	goevdev.KEY_DOWN:       dispatch.KeyDown,
	goevdev.KEY_UP:         dispatch.KeyUp,
	goevdev.KEY_NUMLOCK:    dispatch.KeyNumLock,
	goevdev.KEY_KPSLASH:    dispatch.KeypadSlash,
	goevdev.KEY_KPASTERISK: dispatch.KeypadAsterisk,
	goevdev.KEY_KPMINUS:    dispatch.KeypadMinus,
	goevdev.KEY_KPPLUS:     dispatch.KeypadPlus,
	goevdev.KEY_KPENTER:    dispatch.KeypadEnter,
	goevdev.KEY_KPDOT:      dispatch.KeypadDot,
}

var modifierCodes = map[goevdev.EvCode]dispatch.Modifier{
	goevdev.KEY_LEFTCTRL:   dispatch.ModLeftCtrl,
	goevdev.KEY_LEFTSHIFT:  dispatch.ModLeftShift,
	goevdev.KEY_LEFTALT:    dispatch.ModLeftAlt,
	goevdev.KEY_LEFTMETA:   dispatch.ModLeftGUI,
	goevdev.KEY_RIGHTCTRL:  dispatch.ModRightCtrl,
	goevdev.KEY_RIGHTSHIFT: dispatch.ModRightShift,
	goevdev.KEY_RIGHTALT:   dispatch.ModRightAlt,
	goevdev.KEY_RIGHTMETA:  dispatch.ModRightGUI,
}

var hidCodes = buildHIDCodes()

func buildHIDCodes() map[goevdev.EvCode]dispatch.KeyCode {
	m := make(map[goevdev.EvCode]dispatch.KeyCode, len(fixedCodes)+len(letterCodes)+2*len(digitCodes))
	for code, hid := range fixedCodes {
		m[code] = hid
	}
	for i, code := range letterCodes {
		m[code] = dispatch.KeyA + dispatch.KeyCode(i)
	}
	for i, code := range digitCodes {
		m[code] = dispatch.Key1 + dispatch.KeyCode(i)
	}
	for i, code := range keypadCodes {
		m[code] = dispatch.Keypad1 + dispatch.KeyCode(i)
	}
	return m
}

// HIDCode maps a Linux input key code onto its USB HID usage.
func HIDCode(code goevdev.EvCode) (dispatch.KeyCode, bool) {
	hid, ok := hidCodes[code]
	return hid, ok
}

// keyState tracks held modifiers and toggled locks across events.
type keyState struct {
	mods dispatch.Modifier
	led  dispatch.LED
}

// apply folds one EV_KEY event into the state. It returns the key event to
// deliver, or false for modifier and lock changes and unmapped keys.
// Value is 0 for release, 1 for press and 2 for autorepeat.
func (s *keyState) apply(code goevdev.EvCode, value int32) (dispatch.KeyEvent, bool) {
	if mod, ok := modifierCodes[code]; ok {
		if value == 0 {
			s.mods &^= mod
		} else {
			s.mods |= mod
		}
		return dispatch.KeyEvent{}, false
	}

	pressed := value != 0
	switch code {
	case goevdev.KEY_CAPSLOCK:
		if value == 1 {
			s.led ^= dispatch.LEDCapsLock
		}
		return dispatch.KeyEvent{}, false
	case goevdev.KEY_NUMLOCK:
		if value == 1 {
			s.led ^= dispatch.LEDNumLock
		}
		return dispatch.KeyEvent{}, false
	case goevdev.KEY_SCROLLLOCK:
		if value == 1 {
			s.led ^= dispatch.LEDScrollLock
		}
		return dispatch.KeyEvent{}, false
	}

	hid, ok := HIDCode(code)
	if !ok {
		return dispatch.KeyEvent{}, false
	}
	return dispatch.KeyEvent{LED: s.led, Modifiers: s.mods, Code: hid, Pressed: pressed}, true
}
