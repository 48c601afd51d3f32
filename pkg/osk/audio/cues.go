// Package audio plays the keyboard's short feedback cues.
package audio

import (
	"math"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// tone is one note of a cue. A zero frequency is a rest.
type tone struct {
	freq     float64
	duration time.Duration
}

var cueTones = map[dispatch.Cue][]tone{
	dispatch.CueCursor: {{1320, 18 * time.Millisecond}},
	dispatch.CueEnter:  {{880, 40 * time.Millisecond}, {1320, 60 * time.Millisecond}},
	dispatch.CueCancel: {{660, 50 * time.Millisecond}, {440, 80 * time.Millisecond}},
	dispatch.CueReject: {{220, 60 * time.Millisecond}, {0, 30 * time.Millisecond}, {220, 60 * time.Millisecond}},
}

// CueStreamer renders a cue at the given volume (0..1). It returns nil for
// CueNone and for unknown cues.
func CueStreamer(cue dispatch.Cue, volume float64) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok || volume <= 0 {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		n := sampleRate.N(t.duration)
		if t.freq == 0 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		parts = append(parts, newRelease(beep.Take(n, sine), n))
	}
	if len(parts) == 0 {
		return nil
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(math.Min(volume, 1)),
	}
}

// release fades the tail of a note so it ends without a click.
type release struct {
	streamer beep.Streamer
	position int
	total    int
	tail     int
}

func newRelease(s beep.Streamer, total int) beep.Streamer {
	tail := total / 3
	if tail < 1 {
		tail = 1
	}
	return &release{streamer: s, total: total, tail: tail}
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		left := r.total - r.position
		if left < r.tail {
			gain := float64(left) / float64(r.tail)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error {
	return r.streamer.Err()
}
