//go:build !linux

package osk

import (
	"context"

	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/session"
)

func startEvdev(_ context.Context, device string, _ bool, _ *session.ChanSource) {
	logging.For("evdev").Debug("Physical keyboard input is only read on Linux", "device", device)
}
