package dispatch

// KeyResolver converts a key code into the character it types.
type KeyResolver interface {
	Resolve(code KeyCode, mods Modifier, led LED) (rune, bool)
}

// USLayout resolves codes with a US ANSI layout.
type USLayout struct{}

var usSymbols = map[KeyCode][2]rune{
	KeySpace:        {' ', ' '},
	KeyMinus:        {'-', '_'},
	KeyEqual:        {'=', '+'},
	KeyLeftBracket:  {'[', '{'},
	KeyRightBracket: {']', '}'},
	KeyBackslash:    {'\\', '|'},
	KeySemicolon:    {';', ':'},
	KeyApostrophe:   {'\'', '"'},
	KeyGrave:        {'`', '~'},
	KeyComma:        {',', '<'},
	KeyDot:          {'.', '>'},
	KeySlash:        {'/', '?'},
}

var usKeypad = map[KeyCode]rune{
	KeypadSlash:    '/',
	KeypadAsterisk: '*',
	KeypadMinus:    '-',
	KeypadPlus:     '+',
}

// Digit rows run 1..9 then 0 in HID order, on both the main block and the keypad.
const (
	usDigits        = "1234567890"
	usDigitsShifted = "!@#$%^&*()"
)

func (USLayout) Resolve(code KeyCode, mods Modifier, led LED) (rune, bool) {
	shift := mods&ModShift != 0
	if mods&(ModCtrl|ModAlt) != 0 {
		return 0, false
	}

	switch {
	case code >= KeyA && code <= KeyZ:
		r := 'a' + rune(code-KeyA)
		if shift != (led&LEDCapsLock != 0) {
			r -= 'a' - 'A'
		}
		return r, true

	case code >= Key1 && code <= Key0:
		i := int(code - Key1)
		if shift {
			return rune(usDigitsShifted[i]), true
		}
		return rune(usDigits[i]), true

	case code >= Keypad1 && code <= Keypad0:
		if led&LEDNumLock == 0 {
			return 0, false
		}
		return rune(usDigits[code-Keypad1]), true

	case code == KeypadDot:
		if led&LEDNumLock == 0 {
			return 0, false
		}
		return '.', true
	}

	if r, ok := usKeypad[code]; ok {
		return r, true
	}
	if pair, ok := usSymbols[code]; ok {
		if shift {
			return pair[1], true
		}
		return pair[0], true
	}
	return 0, false
}
