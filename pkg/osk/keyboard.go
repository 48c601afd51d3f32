package osk

import (
	"context"
	"errors"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/audio"
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/session"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

const frameDelay = 16

// KeyboardConfig extends the session configuration with front end options.
type KeyboardConfig struct {
	session.Config

	// Sounds enables the synthesized audio cues.
	Sounds bool
	Volume float64
	// KeyboardAsButtons drives the dialog with the mapped keyboard keys
	// instead of typing with them.
	KeyboardAsButtons bool
	// Mouse shows a pointer that follows the mouse.
	Mouse bool
	// EvdevDevice reads an additional physical keyboard on Linux. "auto"
	// picks the first keyboard found.
	EvdevDevice string
	Resolver    dispatch.KeyResolver
	OnKey       func(msg dispatch.KeyMessage)
}

type mousePointer struct {
	x, y    *atomic.Int32
	visible *atomic.Bool
}

func newMousePointer() *mousePointer {
	return &mousePointer{x: atomic.NewInt32(0), y: atomic.NewInt32(0), visible: atomic.NewBool(false)}
}

func (m *mousePointer) Pointer() (int, int, bool) {
	return int(m.x.Load()), int(m.y.Load()), m.visible.Load()
}

func (m *mousePointer) move(x, y int32) {
	m.x.Store(x)
	m.y.Store(y)
	m.visible.Store(true)
}

// Keyboard shows the on-screen keyboard and blocks until the user confirms
// or cancels. Cancelling returns ErrCancelled.
func Keyboard(cfg KeyboardConfig) (*KeyboardResult, error) {
	window := internal.GetWindow()
	if window == nil {
		return nil, errors.New("osk: Init must be called before Keyboard")
	}
	logger := logging.For("keyboard")

	processor := internal.GetInputProcessor()
	processor.KeyboardAsButtons = cfg.KeyboardAsButtons

	source := session.NewChanSource(256)
	poster := session.NewQueuePoster()

	var player *audio.Player
	if cfg.Sounds {
		player = audio.NewPlayer(cfg.Volume)
		if err := player.Initialize(); err == nil {
			defer player.Close()
		}
	}

	opts := session.Options{
		Source:   source,
		Poster:   poster,
		Resolver: cfg.Resolver,
		OnKey:    cfg.OnKey,
	}
	if player != nil {
		opts.Cues = player
	}

	var mouse *mousePointer
	if cfg.Mouse {
		mouse = newMousePointer()
		opts.Pointer = mouse
	}

	var (
		closed bool
		result dispatch.Result
		text   string
	)
	opts.OnClose = func(r dispatch.Result, t string) {
		closed, result, text = true, r, t
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.BaseTint == (constants.Color{}) {
		cfg.BaseTint = frameTint
	}

	s, err := session.Open(ctx, cfg.Config, opts)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	if cfg.EvdevDevice != "" {
		startEvdev(ctx, cfg.EvdevDevice, cfg.InterceptInput, source)
	}

	rd := newRenderer(window.Renderer)
	defer rd.destroy()

	repeater := session.NewRepeater()
	pushButton := func(ev *internal.Event, now time.Time) {
		if !ev.Pressed {
			repeater.Release(ev.Button)
			return
		}
		repeater.Press(ev.Button, now)
		source.Push(session.ButtonEvent(ev.Button))
	}

	for !closed {
		now := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				s.Close(dispatch.ResultCancel)
			case *sdl.MouseMotionEvent:
				if mouse != nil {
					mouse.move(e.X, e.Y)
				}
			case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent,
				*sdl.JoyButtonEvent, *sdl.JoyAxisEvent, *sdl.JoyHatEvent:
				button, key := processor.ProcessSDLEvent(event)
				if button != nil {
					pushButton(button, now)
				}
				if key != nil {
					source.Push(session.KeyEvent(*key))
				}
				for pending := processor.Pending(); pending != nil; pending = processor.Pending() {
					pushButton(pending, now)
				}
			}
		}

		for _, b := range repeater.Due(now) {
			source.Push(session.ButtonEvent(b))
		}

		poster.Drain()
		if closed {
			break
		}

		window.RenderBackground()
		rd.draw(s.Frame(now), now)
		window.Renderer.Present()
		sdl.Delay(frameDelay)
	}

	logger.Debug("Keyboard closed", "result", result.String(), "dropped", source.Dropped())

	if result == dispatch.ResultConfirm {
		return &KeyboardResult{Text: text}, nil
	}
	return nil, ErrCancelled
}
