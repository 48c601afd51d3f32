package audio

import (
	"sync"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultVolume is the cue volume used when none is configured.
const DefaultVolume = 0.5

// Player mixes cues onto the system speaker. A Player whose speaker failed to
// initialize stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewPlayer(volume float64) *Player {
	if volume <= 0 {
		volume = DefaultVolume
	}
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker. It is safe to call more than once.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		logging.For("audio").Warn("Audio unavailable, cues disabled", "error", err)
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Play(cue dispatch.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := CueStreamer(cue, p.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
