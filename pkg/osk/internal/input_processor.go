package internal

import (
	"fmt"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/veandco/go-sdl2/sdl"
)

var globalInputProcessor *Processor
var gameControllers []*sdl.GameController
var rawJoysticks []*sdl.Joystick

func InitInputProcessor() {
	globalInputProcessor = NewInputProcessor()
	logger := logging.For("input")

	numJoysticks := sdl.NumJoysticks()
	logger.Debug("Detecting controllers", "joystick_count", numJoysticks)

	for i := 0; i < numJoysticks; i++ {
		if sdl.IsGameController(i) {
			controller := sdl.GameControllerOpen(i)
			if controller == nil {
				logger.Error("Failed to open game controller", "index", i)
				continue
			}
			logger.Debug("Opened game controller", "index", i, "name", controller.Name())
			gameControllers = append(gameControllers, controller)
			continue
		}

		joystick := sdl.JoystickOpen(i)
		if joystick == nil {
			logger.Debug("Failed to open raw joystick", "index", i)
			continue
		}
		logger.Debug("Opened raw joystick (not a standard game controller)", "index", i, "name", joystick.Name())
		rawJoysticks = append(rawJoysticks, joystick)
	}

	logger.Debug("Controller detection complete",
		"game_controllers", len(gameControllers),
		"raw_joysticks", len(rawJoysticks),
	)
}

func GetInputProcessor() *Processor {
	return globalInputProcessor
}

// Processor turns SDL events into virtual button events or keyboard events.
type Processor struct {
	mapping *InputMapping
	// KeyboardAsButtons routes mapped keys to buttons instead of typing them.
	KeyboardAsButtons bool

	axisStates map[uint8]int8
	hatStates  map[uint8]uint8
	eventQueue []*Event
}

func NewInputProcessor() *Processor {
	return &Processor{
		mapping:    GetInputMapping(),
		axisStates: make(map[uint8]int8),
		hatStates:  make(map[uint8]uint8),
	}
}

// Pending returns a button event queued by an earlier hat change, if any.
func (ip *Processor) Pending() *Event {
	if len(ip.eventQueue) == 0 {
		return nil
	}
	evt := ip.eventQueue[0]
	ip.eventQueue = ip.eventQueue[1:]
	return evt
}

// ProcessSDLEvent returns at most one of a button event or a key event.
func (ip *Processor) ProcessSDLEvent(event sdl.Event) (*Event, *dispatch.KeyEvent) {
	logger := logging.For("input")

	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		if ip.KeyboardAsButtons {
			if button, ok := ip.mapping.KeyboardMap[e.Keysym.Sym]; ok {
				if e.Repeat != 0 {
					return nil, nil
				}
				return &Event{Button: button, Pressed: e.Type == sdl.KEYDOWN, Source: SourceKeyboard, RawCode: int(e.Keysym.Sym)}, nil
			}
		}
		key := KeyEventFromSDL(e)
		return nil, &key

	case *sdl.ControllerButtonEvent:
		button, ok := ip.mapping.ControllerButtonMap[sdl.GameControllerButton(e.Button)]
		if !ok {
			logger.Debug("Controller button not mapped",
				"button_code", fmt.Sprintf("%s (%d)", sdl.GameControllerGetStringForButton(sdl.GameControllerButton(e.Button)), e.Button))
			return nil, nil
		}
		return &Event{Button: button, Pressed: e.Type == sdl.CONTROLLERBUTTONDOWN, Source: SourceController, RawCode: int(e.Button)}, nil

	case *sdl.ControllerAxisEvent:
		am, ok := ip.mapping.ControllerAxisMap[sdl.GameControllerAxis(e.Axis)]
		if !ok {
			return nil, nil
		}
		return ip.axis(e.Axis, e.Value, am, SourceController), nil

	case *sdl.JoyAxisEvent:
		am, ok := ip.mapping.JoystickAxisMap[e.Axis]
		if !ok {
			return nil, nil
		}
		return ip.axis(e.Axis, e.Value, am, SourceJoystick), nil

	case *sdl.JoyButtonEvent:
		button, ok := ip.mapping.JoystickButtonMap[e.Button]
		if !ok {
			logger.Debug("Joy button not mapped", "button_code", e.Button)
			return nil, nil
		}
		return &Event{Button: button, Pressed: e.Type == sdl.JOYBUTTONDOWN, Source: SourceJoystick, RawCode: int(e.Button)}, nil

	case *sdl.JoyHatEvent:
		return ip.hat(e.Hat, e.Value), nil
	}
	return nil, nil
}

// axis reports a press when the value crosses the threshold and a release
// when it falls back. A flip from one side to the other releases first and
// queues the new press.
func (ip *Processor) axis(axis uint8, value int16, am JoystickAxisMapping, source Source) *Event {
	var state int8
	switch {
	case value > am.Threshold:
		state = 1
	case value < -am.Threshold:
		state = -1
	}

	previous := ip.axisStates[axis]
	if state == previous {
		return nil
	}
	ip.axisStates[axis] = state

	buttonFor := func(s int8) constants.VirtualButton {
		if s > 0 {
			return am.PositiveButton
		}
		return am.NegativeButton
	}

	var release *Event
	if previous != 0 {
		if b := buttonFor(previous); b != constants.VirtualButtonUnassigned {
			release = &Event{Button: b, Pressed: false, Source: source, RawCode: int(axis)}
		}
	}

	var press *Event
	if state != 0 {
		if b := buttonFor(state); b != constants.VirtualButtonUnassigned {
			press = &Event{Button: b, Pressed: true, Source: source, RawCode: int(axis)}
		}
	}

	switch {
	case release != nil && press != nil:
		ip.eventQueue = append(ip.eventQueue, press)
		return release
	case release != nil:
		return release
	default:
		return press
	}
}

func (ip *Processor) hat(hat, value uint8) *Event {
	previous := ip.hatStates[hat]
	ip.hatStates[hat] = value
	if previous == value {
		return nil
	}

	var release, press *Event
	if b, ok := ip.mapping.JoystickHatMap[previous]; ok && previous != sdl.HAT_CENTERED {
		release = &Event{Button: b, Pressed: false, Source: SourceHatSwitch, RawCode: int(previous)}
	}
	if b, ok := ip.mapping.JoystickHatMap[value]; ok && value != sdl.HAT_CENTERED {
		press = &Event{Button: b, Pressed: true, Source: SourceHatSwitch, RawCode: int(value)}
	}

	if release != nil && press != nil {
		ip.eventQueue = append(ip.eventQueue, press)
		return release
	}
	if release != nil {
		return release
	}
	return press
}

func CloseAllControllers() {
	for _, controller := range gameControllers {
		if controller != nil {
			controller.Close()
		}
	}
	for _, joystick := range rawJoysticks {
		if joystick != nil {
			joystick.Close()
		}
	}
	gameControllers, rawJoysticks = nil, nil
}
