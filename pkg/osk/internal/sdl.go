package internal

import (
	"fmt"

	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Init brings up SDL, the window, fonts and controllers.
func Init(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("init SDL: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return fmt.Errorf("init SDL_ttf: %w", err)
	}
	img.Init(img.INIT_PNG)

	w, err := initWindow(title)
	if err != nil {
		SDLCleanup()
		return fmt.Errorf("create window: %w", err)
	}
	window = w

	if err := initFonts(GetTheme().FontPath); err != nil {
		SDLCleanup()
		return err
	}

	InitInputProcessor()
	logging.For("sdl").Debug("SDL initialized", "title", title)
	return nil
}

func SDLCleanup() {
	CloseAllControllers()
	closeFonts()
	if window != nil {
		window.close()
		window = nil
	}
	img.Quit()
	ttf.Quit()
	sdl.Quit()
}
