package internal

import (
	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/veandco/go-sdl2/sdl"
)

// KeyEventFromSDL converts an SDL keyboard event. SDL scancodes are USB HID
// usage codes so they pass through unchanged.
func KeyEventFromSDL(e *sdl.KeyboardEvent) dispatch.KeyEvent {
	mod := uint16(e.Keysym.Mod)

	var mods dispatch.Modifier
	for _, m := range []struct {
		sdl uint16
		hid dispatch.Modifier
	}{
		{uint16(sdl.KMOD_LCTRL), dispatch.ModLeftCtrl},
		{uint16(sdl.KMOD_LSHIFT), dispatch.ModLeftShift},
		{uint16(sdl.KMOD_LALT), dispatch.ModLeftAlt},
		{uint16(sdl.KMOD_LGUI), dispatch.ModLeftGUI},
		{uint16(sdl.KMOD_RCTRL), dispatch.ModRightCtrl},
		{uint16(sdl.KMOD_RSHIFT), dispatch.ModRightShift},
		{uint16(sdl.KMOD_RALT), dispatch.ModRightAlt},
		{uint16(sdl.KMOD_RGUI), dispatch.ModRightGUI},
	} {
		if mod&m.sdl != 0 {
			mods |= m.hid
		}
	}

	var led dispatch.LED
	if mod&uint16(sdl.KMOD_NUM) != 0 {
		led |= dispatch.LEDNumLock
	}
	if mod&uint16(sdl.KMOD_CAPS) != 0 {
		led |= dispatch.LEDCapsLock
	}

	return dispatch.KeyEvent{
		LED:       led,
		Modifiers: mods,
		Code:      dispatch.KeyCode(e.Keysym.Scancode),
		Pressed:   e.Type == sdl.KEYDOWN,
	}
}
