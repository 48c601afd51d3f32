package present

import (
	"time"

	"go.uber.org/atomic"
)

// FadeDuration is the length of the open and close transitions.
const FadeDuration = 500 * time.Millisecond

type fadeState struct {
	from, to float64
	start    time.Time
	duration time.Duration
	onFinish func()
}

// Fade animates an alpha value. Start may be called from the input goroutine
// while Tick runs on the render goroutine.
type Fade struct {
	alpha *atomic.Float64
	state *atomic.Pointer[fadeState]
}

func NewFade(alpha float64) *Fade {
	return &Fade{
		alpha: atomic.NewFloat64(alpha),
		state: atomic.NewPointer[fadeState](nil),
	}
}

// Start replaces any running transition. onFinish runs once, from the Tick
// that completes the transition.
func (f *Fade) Start(from, to float64, duration time.Duration, now time.Time, onFinish func()) {
	f.alpha.Store(from)
	f.state.Store(&fadeState{from: from, to: to, start: now, duration: duration, onFinish: onFinish})
}

func (f *Fade) Active() bool {
	return f.state.Load() != nil
}

func (f *Fade) Alpha() float64 {
	return f.alpha.Load()
}

// Tick advances the transition to now and returns the current alpha.
func (f *Fade) Tick(now time.Time) float64 {
	st := f.state.Load()
	if st == nil {
		return f.alpha.Load()
	}

	progress := 1.0
	if st.duration > 0 {
		progress = float64(now.Sub(st.start)) / float64(st.duration)
	}
	if progress < 0 {
		progress = 0
	}

	if progress < 1 {
		alpha := st.from + (st.to-st.from)*progress
		f.alpha.Store(alpha)
		return alpha
	}

	f.alpha.Store(st.to)
	if f.state.CompareAndSwap(st, nil) && st.onFinish != nil {
		st.onFinish()
	}
	return st.to
}

// Finish jumps the running transition to its end. It is a no-op when the
// transition already completed through Tick.
func (f *Fade) Finish() {
	st := f.state.Load()
	if st == nil {
		return
	}
	f.alpha.Store(st.to)
	if f.state.CompareAndSwap(st, nil) && st.onFinish != nil {
		st.onFinish()
	}
}
