//go:build linux

// Package evdev feeds physical keyboards on Linux handhelds into a keyboard
// session without going through SDL.
package evdev

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/session"
	goevdev "github.com/holoplot/go-evdev"
)

// ErrNoKeyboard is returned by Discover when no device reports letter keys.
var ErrNoKeyboard = errors.New("no keyboard input device found")

// Pusher receives translated events. session.ChanSource satisfies it.
type Pusher interface {
	Push(ev session.Event) bool
}

type Source struct {
	device *goevdev.InputDevice
	path   string
	grab   bool

	closeOnce sync.Once
}

// Open opens the device at path. With grab set the device is grabbed so key
// presses do not also reach the host while the keyboard is open.
func Open(path string, grab bool) (*Source, error) {
	dev, err := goevdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if grab {
		if err := dev.Grab(); err != nil {
			logging.For("evdev").Warn("Failed to grab input device", "path", path, "error", err)
			grab = false
		}
	}

	name, _ := dev.Name()
	logging.For("evdev").Debug("Opened evdev keyboard", "path", path, "name", name, "grab", grab)
	return &Source{device: dev, path: path, grab: grab}, nil
}

// Discover returns the path of the first device that looks like a keyboard.
func Discover() (string, error) {
	paths, err := goevdev.ListDevicePaths()
	if err != nil {
		return "", err
	}

	for _, p := range paths {
		if strings.Contains(strings.ToLower(p.Name), "mouse") {
			continue
		}
		dev, err := goevdev.Open(p.Path)
		if err != nil {
			continue
		}
		keys := dev.CapableEvents(goevdev.EV_KEY)
		dev.Close()

		if hasKeys(keys, goevdev.KEY_A, goevdev.KEY_Z, goevdev.KEY_SPACE) {
			return p.Path, nil
		}
	}
	return "", ErrNoKeyboard
}

func hasKeys(codes []goevdev.EvCode, want ...goevdev.EvCode) bool {
	found := 0
	for _, w := range want {
		for _, c := range codes {
			if c == w {
				found++
				break
			}
		}
	}
	return found == len(want)
}

// Run reads the device until ctx is done or the device fails, pushing one
// key event per key press, repeat and release.
func (s *Source) Run(ctx context.Context, out Pusher) error {
	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	var state keyState
	for {
		ev, err := s.device.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		if ev.Type != goevdev.EV_KEY {
			continue
		}

		key, ok := state.apply(ev.Code, ev.Value)
		if !ok {
			continue
		}
		out.Push(session.KeyEvent(key))
	}
}

func (s *Source) Close() {
	s.closeOnce.Do(func() {
		if s.grab {
			_ = s.device.Ungrab()
		}
		_ = s.device.Close()
	})
}
