package constants

// VirtualButton is a controller-agnostic button. Physical inputs are mapped onto
// these by the input mapper before they reach the keyboard.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonX
	VirtualButtonY
	VirtualButtonL1
	VirtualButtonL2
	VirtualButtonR1
	VirtualButtonR2
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
	// Right stick directions, used to move the keyboard frame.
	VirtualButtonRSUp
	VirtualButtonRSDown
	VirtualButtonRSLeft
	VirtualButtonRSRight
)

var virtualButtonNames = map[VirtualButton]string{
	VirtualButtonUnassigned: "Unassigned",
	VirtualButtonUp:         "Up",
	VirtualButtonDown:       "Down",
	VirtualButtonLeft:       "Left",
	VirtualButtonRight:      "Right",
	VirtualButtonA:          "A",
	VirtualButtonB:          "B",
	VirtualButtonX:          "X",
	VirtualButtonY:          "Y",
	VirtualButtonL1:         "L1",
	VirtualButtonL2:         "L2",
	VirtualButtonR1:         "R1",
	VirtualButtonR2:         "R2",
	VirtualButtonStart:      "Start",
	VirtualButtonSelect:     "Select",
	VirtualButtonMenu:       "Menu",
	VirtualButtonRSUp:       "RS Up",
	VirtualButtonRSDown:     "RS Down",
	VirtualButtonRSLeft:     "RS Left",
	VirtualButtonRSRight:    "RS Right",
}

// GetName returns a human readable name for logging.
func (vb VirtualButton) GetName() string {
	if name, ok := virtualButtonNames[vb]; ok {
		return name
	}
	return "Unknown"
}

// IsDirectional reports whether the button is one of the d-pad directions.
func (vb VirtualButton) IsDirectional() bool {
	return vb == VirtualButtonUp || vb == VirtualButtonDown ||
		vb == VirtualButtonLeft || vb == VirtualButtonRight
}

// IsAnalogMove reports whether the button is one of the right stick directions.
func (vb VirtualButton) IsAnalogMove() bool {
	return vb >= VirtualButtonRSUp && vb <= VirtualButtonRSRight
}
