package session

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/stretchr/testify/assert"
)

func TestRepeaterDelayThenInterval(t *testing.T) {
	r := NewRepeater()
	r.Press(constants.VirtualButtonRight, base)

	assert.Empty(t, r.Due(base.Add(100*time.Millisecond)))
	assert.Equal(t, []constants.VirtualButton{constants.VirtualButtonRight}, r.Due(base.Add(DefaultRepeatDelay)))
	assert.Empty(t, r.Due(base.Add(DefaultRepeatDelay+10*time.Millisecond)))
	assert.Len(t, r.Due(base.Add(DefaultRepeatDelay+DefaultRepeatInterval)), 1)
}

func TestRepeaterFrameButtonsAreFaster(t *testing.T) {
	r := NewRepeater()
	r.Press(constants.VirtualButtonRSLeft, base)

	first := base.Add(DefaultRepeatDelay)
	assert.Len(t, r.Due(first), 1)
	assert.Len(t, r.Due(first.Add(DefaultFrameRepeatInterval)), 1)
}

func TestRepeaterIgnoresOneShotButtons(t *testing.T) {
	r := NewRepeater()
	for _, b := range []constants.VirtualButton{
		constants.VirtualButtonStart, constants.VirtualButtonY,
		constants.VirtualButtonSelect, constants.VirtualButtonL2,
	} {
		r.Press(b, base)
	}
	assert.Zero(t, r.Held())
	assert.Empty(t, r.Due(base.Add(time.Second)))
}

func TestRepeaterOppositeCancels(t *testing.T) {
	r := NewRepeater()
	r.Press(constants.VirtualButtonLeft, base)
	r.Press(constants.VirtualButtonRight, base)
	r.Press(constants.VirtualButtonA, base)

	assert.Equal(t, 2, r.Held())
	assert.Equal(t,
		[]constants.VirtualButton{constants.VirtualButtonRight, constants.VirtualButtonA},
		r.Due(base.Add(time.Second)))
}

func TestRepeaterRelease(t *testing.T) {
	r := NewRepeater()
	r.Press(constants.VirtualButtonB, base)
	r.Release(constants.VirtualButtonB)
	assert.Empty(t, r.Due(base.Add(time.Second)))

	r.Press(constants.VirtualButtonX, base)
	r.Reset()
	assert.Zero(t, r.Held())
}
