package internal

import (
	"os"
	"strconv"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/present"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// Window owns the SDL window and renderer. The renderer's logical size is
// the keyboard's virtual screen so primitives draw without rescaling.
type Window struct {
	Window     *sdl.Window
	Renderer   *sdl.Renderer
	Title      string
	Background *sdl.Texture
}

var window *Window

func initWindow(title string) (*Window, error) {
	displayMode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		logging.For("window").Error("Failed to get display mode", "error", err)
		displayMode.W, displayMode.H = present.VirtualWidth, present.VirtualHeight
	}
	return initWindowWithSize(title, displayMode.W, displayMode.H)
}

func initWindowWithSize(title string, width, height int32) (*Window, error) {
	logger := logging.For("window")
	x, y := int32(0), int32(0)
	flags := uint32(sdl.WINDOW_SHOWN)

	if constants.IsDevMode() {
		x, y = 50, 50
		width = envSize("WINDOW_WIDTH", present.VirtualWidth)
		height = envSize("WINDOW_HEIGHT", present.VirtualHeight)
		flags |= sdl.WINDOW_BORDERLESS
	}

	logger.Debug("Initializing SDL window", "width", width, "height", height)

	w, err := sdl.CreateWindow(title, x, y, width, height, flags)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(w, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		logger.Error("Failed to create renderer", "error", err)
		w.Destroy()
		return nil, err
	}

	renderer.SetLogicalSize(present.VirtualWidth, present.VirtualHeight)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	win := &Window{Window: w, Renderer: renderer, Title: title}
	win.loadBackground()
	return win, nil
}

func envSize(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		logging.For("window").Warn("Invalid window size; using default", "name", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func (w *Window) loadBackground() {
	path := GetTheme().BackgroundImagePath
	if path == "" {
		return
	}

	texture, err := img.LoadTexture(w.Renderer, path)
	if err != nil {
		logging.For("window").Debug("No background image", "path", path, "error", err)
		return
	}
	w.Background = texture
}

func (w *Window) RenderBackground() {
	if w.Background == nil {
		w.Renderer.SetDrawColor(0, 0, 0, 255)
		w.Renderer.Clear()
		return
	}
	w.Renderer.Copy(w.Background, nil, &sdl.Rect{W: present.VirtualWidth, H: present.VirtualHeight})
}

func (w *Window) close() {
	if w.Background != nil {
		w.Background.Destroy()
	}
	w.Renderer.Destroy()
	w.Window.Destroy()
}

func GetWindow() *Window {
	return window
}
