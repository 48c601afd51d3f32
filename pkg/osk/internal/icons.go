package internal

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	circleIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><circle cx="16" cy="16" r="15" fill="#ffffff"/></svg>`
	pillIcon   = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect x="1" y="9" width="30" height="14" rx="7" fill="#ffffff"/></svg>`
	arrowIcon  = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><path d="M2 2 L2 28 L9 21 L14 31 L19 29 L14 19 L24 19 Z" fill="#ffffff" stroke="#000000" stroke-width="1.5"/></svg>`
)

var iconShapes = map[string]string{
	"button_a":      circleIcon,
	"button_b":      circleIcon,
	"button_x":      circleIcon,
	"button_y":      circleIcon,
	"button_start":  pillIcon,
	"button_select": pillIcon,
	"pointer":       arrowIcon,
}

// IconGlyphs are drawn over the icon shape.
var IconGlyphs = map[string]string{
	"button_a": "A",
	"button_b": "B",
	"button_x": "X",
	"button_y": "Y",
}

type iconKey struct {
	name string
	size int32
}

// Icons rasterizes the SVG shapes at the sizes requested and keeps them as
// white textures tinted with SetColorMod.
type Icons struct {
	renderer *sdl.Renderer
	cache    map[iconKey]*sdl.Texture
}

func NewIcons(renderer *sdl.Renderer) *Icons {
	return &Icons{renderer: renderer, cache: make(map[iconKey]*sdl.Texture)}
}

func (ic *Icons) Texture(name string, size int32) (*sdl.Texture, error) {
	key := iconKey{name, size}
	if t, ok := ic.cache[key]; ok {
		return t, nil
	}

	svg, ok := iconShapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", name)
	}

	t, err := loadSVGTexture(ic.renderer, []byte(svg), size, size)
	if err != nil {
		logging.For("icons").Error("Failed to rasterize icon", "icon", name, "error", err)
		return nil, err
	}
	ic.cache[key] = t
	return t, nil
}

func (ic *Icons) Destroy() {
	for k, t := range ic.cache {
		t.Destroy()
		delete(ic.cache, k)
	}
}

func loadSVGTexture(renderer *sdl.Renderer, svgData []byte, width, height int32) (*sdl.Texture, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	if width <= 0 || height <= 0 {
		width, height = int32(icon.ViewBox.W), int32(icon.ViewBox.H)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	scanner := rasterx.NewScannerGV(int(width), int(height), rgba, rgba.Bounds())
	raster := rasterx.NewDasher(int(width), int(height), scanner)

	icon.SetTarget(0, 0, float64(width), float64(height))
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode SVG as PNG: %w", err)
	}

	rw, err := sdl.RWFromMem(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create RWops from icon: %w", err)
	}
	texture, err := img.LoadTextureRW(renderer, rw, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load icon texture: %w", err)
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}
