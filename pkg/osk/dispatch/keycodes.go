package dispatch

// KeyCode is a USB HID keyboard usage code. SDL scancodes share the same values.
type KeyCode uint16

const (
	KeyNone KeyCode = 0x00

	KeyA KeyCode = 0x04
	KeyB KeyCode = 0x05
	KeyC KeyCode = 0x06
	KeyZ KeyCode = 0x1D
	Key1 KeyCode = 0x1E
	Key0 KeyCode = 0x27

	KeyEnter        KeyCode = 0x28
	KeyEscape       KeyCode = 0x29
	KeyBackspace    KeyCode = 0x2A
	KeyTab          KeyCode = 0x2B
	KeySpace        KeyCode = 0x2C
	KeyMinus        KeyCode = 0x2D
	KeyEqual        KeyCode = 0x2E
	KeyLeftBracket  KeyCode = 0x2F
	KeyRightBracket KeyCode = 0x30
	KeyBackslash    KeyCode = 0x31
	KeySemicolon    KeyCode = 0x33
	KeyApostrophe   KeyCode = 0x34
	KeyGrave        KeyCode = 0x35
	KeyComma        KeyCode = 0x36
	KeyDot          KeyCode = 0x37
	KeySlash        KeyCode = 0x38
	KeyCapsLock     KeyCode = 0x39

	KeyDelete KeyCode = 0x4C
	KeyRight  KeyCode = 0x4F
	KeyLeft   KeyCode = 0x50
	KeyDown   KeyCode = 0x51
	KeyUp     KeyCode = 0x52

	KeyNumLock     KeyCode = 0x53
	KeypadSlash    KeyCode = 0x54
	KeypadAsterisk KeyCode = 0x55
	KeypadMinus    KeyCode = 0x56
	KeypadPlus     KeyCode = 0x57
	KeypadEnter    KeyCode = 0x58
	Keypad1        KeyCode = 0x59
	Keypad0        KeyCode = 0x62
	KeypadDot      KeyCode = 0x63
)

// Modifier is the HID modifier byte.
type Modifier uint8

const (
	ModLeftCtrl Modifier = 1 << iota
	ModLeftShift
	ModLeftAlt
	ModLeftGUI
	ModRightCtrl
	ModRightShift
	ModRightAlt
	ModRightGUI

	ModShift = ModLeftShift | ModRightShift
	ModCtrl  = ModLeftCtrl | ModRightCtrl
	ModAlt   = ModLeftAlt | ModRightAlt
)

// LED is the keyboard lock state.
type LED uint8

const (
	LEDNumLock LED = 1 << iota
	LEDCapsLock
	LEDScrollLock
)
