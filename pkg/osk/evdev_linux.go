//go:build linux

package osk

import (
	"context"

	"github.com/BrandonKowalski/osk/pkg/osk/internal/evdev"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
)

func startEvdev(ctx context.Context, device string, grab bool, out evdev.Pusher) {
	logger := logging.For("evdev")

	path := device
	if device == "auto" {
		found, err := evdev.Discover()
		if err != nil {
			logger.Warn("No physical keyboard found", "error", err)
			return
		}
		path = found
	}

	src, err := evdev.Open(path, grab)
	if err != nil {
		logger.Warn("Failed to open physical keyboard", "path", path, "error", err)
		return
	}

	go func() {
		if err := src.Run(ctx, out); err != nil && ctx.Err() == nil {
			logger.Warn("Physical keyboard stopped", "path", path, "error", err)
		}
	}()
}
