package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/veandco/go-sdl2/sdl"
)

const MappingPathEnvVar = "INPUT_MAPPING_PATH"

var inputMappingBytes []byte

func SetInputMappingBytes(data []byte) {
	inputMappingBytes = data
}

type Source int

const (
	SourceKeyboard Source = iota
	SourceController
	SourceJoystick
	SourceHatSwitch
)

type Event struct {
	Button  constants.VirtualButton
	Pressed bool
	Source  Source
	RawCode int
}

type JoystickAxisMapping struct {
	PositiveButton constants.VirtualButton
	NegativeButton constants.VirtualButton
	Threshold      int16
}

// InputMapping maps physical controls onto virtual buttons. KeyboardMap is
// only consulted when the keyboard drives the dialog as a controller; by
// default physical keys type text.
type InputMapping struct {
	KeyboardMap         map[sdl.Keycode]constants.VirtualButton
	ControllerButtonMap map[sdl.GameControllerButton]constants.VirtualButton
	ControllerAxisMap   map[sdl.GameControllerAxis]JoystickAxisMapping
	JoystickAxisMap     map[uint8]JoystickAxisMapping
	JoystickButtonMap   map[uint8]constants.VirtualButton
	JoystickHatMap      map[uint8]constants.VirtualButton
}

type axisMapping struct {
	PositiveButton int   `json:"positive_button"`
	NegativeButton int   `json:"negative_button"`
	Threshold      int16 `json:"threshold"`
}

type Mapping struct {
	KeyboardMap         map[int]int         `json:"keyboard_map"`
	ControllerButtonMap map[int]int         `json:"controller_button_map"`
	ControllerAxisMap   map[int]axisMapping `json:"controller_axis_map"`
	JoystickAxisMap     map[int]axisMapping `json:"joystick_axis_map"`
	JoystickButtonMap   map[int]int         `json:"joystick_button_map"`
	JoystickHatMap      map[int]int         `json:"joystick_hat_map"`
}

const stickThreshold = 16000

func DefaultInputMapping() *InputMapping {
	return &InputMapping{
		KeyboardMap: map[sdl.Keycode]constants.VirtualButton{
			sdl.K_UP:        constants.VirtualButtonUp,
			sdl.K_DOWN:      constants.VirtualButtonDown,
			sdl.K_LEFT:      constants.VirtualButtonLeft,
			sdl.K_RIGHT:     constants.VirtualButtonRight,
			sdl.K_a:         constants.VirtualButtonA,
			sdl.K_b:         constants.VirtualButtonB,
			sdl.K_x:         constants.VirtualButtonX,
			sdl.K_y:         constants.VirtualButtonY,
			sdl.K_l:         constants.VirtualButtonL1,
			sdl.K_SEMICOLON: constants.VirtualButtonL2,
			sdl.K_r:         constants.VirtualButtonR1,
			sdl.K_t:         constants.VirtualButtonR2,
			sdl.K_RETURN:    constants.VirtualButtonStart,
			sdl.K_SPACE:     constants.VirtualButtonSelect,
			sdl.K_h:         constants.VirtualButtonMenu,
			sdl.K_KP_8:      constants.VirtualButtonRSUp,
			sdl.K_KP_2:      constants.VirtualButtonRSDown,
			sdl.K_KP_4:      constants.VirtualButtonRSLeft,
			sdl.K_KP_6:      constants.VirtualButtonRSRight,
		},
		ControllerButtonMap: map[sdl.GameControllerButton]constants.VirtualButton{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.VirtualButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.VirtualButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.VirtualButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.VirtualButtonRight,
			sdl.CONTROLLER_BUTTON_A:             constants.VirtualButtonB,
			sdl.CONTROLLER_BUTTON_B:             constants.VirtualButtonA,
			sdl.CONTROLLER_BUTTON_X:             constants.VirtualButtonY,
			sdl.CONTROLLER_BUTTON_Y:             constants.VirtualButtonX,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.VirtualButtonL1,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.VirtualButtonR1,
			sdl.CONTROLLER_BUTTON_START:         constants.VirtualButtonStart,
			sdl.CONTROLLER_BUTTON_BACK:          constants.VirtualButtonSelect,
			sdl.CONTROLLER_BUTTON_GUIDE:         constants.VirtualButtonMenu,
		},
		ControllerAxisMap: map[sdl.GameControllerAxis]JoystickAxisMapping{
			sdl.CONTROLLER_AXIS_RIGHTX:       {PositiveButton: constants.VirtualButtonRSRight, NegativeButton: constants.VirtualButtonRSLeft, Threshold: stickThreshold},
			sdl.CONTROLLER_AXIS_RIGHTY:       {PositiveButton: constants.VirtualButtonRSDown, NegativeButton: constants.VirtualButtonRSUp, Threshold: stickThreshold},
			sdl.CONTROLLER_AXIS_TRIGGERLEFT:  {PositiveButton: constants.VirtualButtonL2, Threshold: stickThreshold},
			sdl.CONTROLLER_AXIS_TRIGGERRIGHT: {PositiveButton: constants.VirtualButtonR2, Threshold: stickThreshold},
		},
		JoystickAxisMap:   map[uint8]JoystickAxisMapping{},
		JoystickButtonMap: map[uint8]constants.VirtualButton{},
		JoystickHatMap: map[uint8]constants.VirtualButton{
			sdl.HAT_UP:    constants.VirtualButtonUp,
			sdl.HAT_DOWN:  constants.VirtualButtonDown,
			sdl.HAT_LEFT:  constants.VirtualButtonLeft,
			sdl.HAT_RIGHT: constants.VirtualButtonRight,
		},
	}
}

// GetInputMapping returns the mapping from bytes set with
// SetInputMappingBytes, else from INPUT_MAPPING_PATH, else the default.
func GetInputMapping() *InputMapping {
	logger := logging.For("input")

	if len(inputMappingBytes) > 0 {
		mapping, err := LoadInputMappingFromBytes(inputMappingBytes)
		if err == nil {
			logger.Info("Loaded custom input mapping from embedded bytes")
			return mapping
		}
		logger.Warn("Failed to load custom input mapping from bytes, trying file path", "error", err)
	}

	if path := os.Getenv(MappingPathEnvVar); path != "" {
		mapping, err := LoadInputMappingFromJSON(path)
		if err == nil {
			logger.Info("Loaded custom input mapping from environment variable", "path", path)
			return mapping
		}
		logger.Warn("Failed to load custom input mapping, using default", "path", path, "error", err)
	}
	return DefaultInputMapping()
}

func LoadInputMappingFromJSON(filePath string) (*InputMapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return LoadInputMappingFromBytes(data)
}

func LoadInputMappingFromBytes(data []byte) (*InputMapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	mapping := &InputMapping{
		KeyboardMap:         make(map[sdl.Keycode]constants.VirtualButton),
		ControllerButtonMap: make(map[sdl.GameControllerButton]constants.VirtualButton),
		ControllerAxisMap:   make(map[sdl.GameControllerAxis]JoystickAxisMapping),
		JoystickAxisMap:     make(map[uint8]JoystickAxisMapping),
		JoystickButtonMap:   make(map[uint8]constants.VirtualButton),
		JoystickHatMap:      make(map[uint8]constants.VirtualButton),
	}

	for code, button := range m.KeyboardMap {
		mapping.KeyboardMap[sdl.Keycode(code)] = constants.VirtualButton(button)
	}
	for code, button := range m.ControllerButtonMap {
		mapping.ControllerButtonMap[sdl.GameControllerButton(code)] = constants.VirtualButton(button)
	}
	for axis, am := range m.ControllerAxisMap {
		mapping.ControllerAxisMap[sdl.GameControllerAxis(axis)] = am.toMapping()
	}
	for axis, am := range m.JoystickAxisMap {
		mapping.JoystickAxisMap[uint8(axis)] = am.toMapping()
	}
	for code, button := range m.JoystickButtonMap {
		mapping.JoystickButtonMap[uint8(code)] = constants.VirtualButton(button)
	}
	for hat, button := range m.JoystickHatMap {
		mapping.JoystickHatMap[uint8(hat)] = constants.VirtualButton(button)
	}

	return mapping, nil
}

func (am axisMapping) toMapping() JoystickAxisMapping {
	return JoystickAxisMapping{
		PositiveButton: constants.VirtualButton(am.PositiveButton),
		NegativeButton: constants.VirtualButton(am.NegativeButton),
		Threshold:      am.Threshold,
	}
}
