package session

import (
	"sort"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
)

const (
	DefaultRepeatDelay    = 150 * time.Millisecond
	DefaultRepeatInterval = 50 * time.Millisecond
	// DefaultFrameRepeatInterval applies to the right stick frame moves.
	DefaultFrameRepeatInterval = 16 * time.Millisecond
)

var repeatable = map[constants.VirtualButton]bool{
	constants.VirtualButtonUp:      true,
	constants.VirtualButtonDown:    true,
	constants.VirtualButtonLeft:    true,
	constants.VirtualButtonRight:   true,
	constants.VirtualButtonA:       true,
	constants.VirtualButtonB:       true,
	constants.VirtualButtonX:       true,
	constants.VirtualButtonL1:      true,
	constants.VirtualButtonR1:      true,
	constants.VirtualButtonRSUp:    true,
	constants.VirtualButtonRSDown:  true,
	constants.VirtualButtonRSLeft:  true,
	constants.VirtualButtonRSRight: true,
}

func isFrameButton(b constants.VirtualButton) bool {
	return b >= constants.VirtualButtonRSUp && b <= constants.VirtualButtonRSRight
}

type heldButton struct {
	next time.Time
}

// Repeater turns held buttons into repeated presses. It is driven by the
// front end's frame loop and is not safe for concurrent use.
type Repeater struct {
	Delay         time.Duration
	Interval      time.Duration
	FrameInterval time.Duration

	held map[constants.VirtualButton]*heldButton
}

func NewRepeater() *Repeater {
	return &Repeater{
		Delay:         DefaultRepeatDelay,
		Interval:      DefaultRepeatInterval,
		FrameInterval: DefaultFrameRepeatInterval,
		held:          make(map[constants.VirtualButton]*heldButton),
	}
}

// Press starts tracking b. Opposite directions cancel each other.
func (r *Repeater) Press(b constants.VirtualButton, now time.Time) {
	if !repeatable[b] {
		return
	}
	if o, ok := opposite(b); ok {
		delete(r.held, o)
	}
	r.held[b] = &heldButton{next: now.Add(r.Delay)}
}

func (r *Repeater) Release(b constants.VirtualButton) {
	delete(r.held, b)
}

func (r *Repeater) Reset() {
	clear(r.held)
}

func (r *Repeater) Held() int {
	return len(r.held)
}

// Due returns the buttons whose repeat is due at now, in button order.
func (r *Repeater) Due(now time.Time) []constants.VirtualButton {
	var due []constants.VirtualButton
	for b, h := range r.held {
		if now.Before(h.next) {
			continue
		}
		interval := r.Interval
		if isFrameButton(b) {
			interval = r.FrameInterval
		}
		h.next = now.Add(interval)
		due = append(due, b)
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })
	return due
}

func opposite(b constants.VirtualButton) (constants.VirtualButton, bool) {
	switch b {
	case constants.VirtualButtonUp:
		return constants.VirtualButtonDown, true
	case constants.VirtualButtonDown:
		return constants.VirtualButtonUp, true
	case constants.VirtualButtonLeft:
		return constants.VirtualButtonRight, true
	case constants.VirtualButtonRight:
		return constants.VirtualButtonLeft, true
	case constants.VirtualButtonRSUp:
		return constants.VirtualButtonRSDown, true
	case constants.VirtualButtonRSDown:
		return constants.VirtualButtonRSUp, true
	case constants.VirtualButtonRSLeft:
		return constants.VirtualButtonRSRight, true
	case constants.VirtualButtonRSRight:
		return constants.VirtualButtonRSLeft, true
	}
	return 0, false
}
