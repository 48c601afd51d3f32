package present

import (
	"math"
	"time"
)

// PulsePeriod is the length of one pulse cycle of the selected run.
const PulsePeriod = time.Second

// PulseFactor is the pulse brightness in 0..1 at now for a pulse started at
// start with the given phase offset (in cycles).
func PulseFactor(start time.Time, offset float64, now time.Time) float64 {
	phase := offset + float64(now.Sub(start))/float64(PulsePeriod)
	return (math.Sin(2*math.Pi*phase) + 1) / 2
}

// PulseAlpha is the alpha multiplier a renderer applies to pulsing primitives.
// It never drops below one half so the selection stays visible.
func (p Primitive) PulseAlpha(now time.Time) float64 {
	if !p.Pulse {
		return 1
	}
	return 0.5 + 0.5*PulseFactor(p.PulseStart, p.PulseOffset, now)
}
