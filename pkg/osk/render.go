package osk

import (
	"time"
	"unicode/utf8"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/present"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	textPadding     = 8
	caretWidth      = 2
	caretBlink      = 500 * time.Millisecond
	maxCachedLabels = 512
)

type textKey struct {
	text string
	size int
}

type textTexture struct {
	texture *sdl.Texture
	w, h    int32
}

// renderer draws compiled primitives with SDL.
type renderer struct {
	r     *sdl.Renderer
	icons *internal.Icons
	texts map[textKey]textTexture
	theme internal.Theme
}

func newRenderer(r *sdl.Renderer) *renderer {
	return &renderer{
		r:     r,
		icons: internal.NewIcons(r),
		texts: make(map[textKey]textTexture),
		theme: internal.GetTheme(),
	}
}

func (rd *renderer) destroy() {
	rd.icons.Destroy()
	rd.flushTexts()
}

func (rd *renderer) flushTexts() {
	for k, t := range rd.texts {
		t.texture.Destroy()
		delete(rd.texts, k)
	}
}

func (rd *renderer) draw(prims []present.Primitive, now time.Time) {
	for i := range prims {
		p := &prims[i]
		switch p.Kind {
		case present.KindRect:
			rect := internal.SDLRect(p.Rect)
			internal.FillRect(rd.r, &rect, internal.SDLColor(p.Back.Fade(p.PulseAlpha(now))))
		case present.KindLabel:
			rd.drawLabel(p, now)
		case present.KindImage:
			rd.drawImage(p)
		}
	}
}

func (rd *renderer) drawLabel(p *present.Primitive, now time.Time) {
	rect := internal.SDLRect(p.Rect)
	internal.FillRect(rd.r, &rect, internal.SDLColor(p.Back))

	if p.Text == "" && p.Caret < 0 {
		return
	}

	fore := p.Fore.Fade(p.PulseAlpha(now))
	var tex textTexture
	if p.Text != "" {
		var ok bool
		tex, ok = rd.text(p.Text, p.FontSize)
		if !ok {
			return
		}
	}

	inner := rect.W - 2*textPadding
	caretX := int32(0)
	if p.Caret >= 0 {
		caretX = rd.prefixWidth(p.Text, p.Caret, p.FontSize, tex.w)
	}

	var offset int32
	if caretX > inner {
		offset = caretX - inner
	}

	x := rect.X + textPadding
	switch p.Align {
	case constants.TextAlignCenter:
		if tex.w < inner {
			x = rect.X + (rect.W-tex.w)/2
		}
	case constants.TextAlignRight:
		if tex.w < inner {
			x = rect.X + rect.W - textPadding - tex.w
		}
	}

	if tex.texture != nil {
		src := sdl.Rect{X: offset, W: min(tex.w-offset, inner), H: tex.h}
		dst := sdl.Rect{X: x, Y: rect.Y + (rect.H-tex.h)/2, W: src.W, H: tex.h}
		tex.texture.SetColorMod(fore.R, fore.G, fore.B)
		tex.texture.SetAlphaMod(fore.A)
		rd.r.Copy(tex.texture, &src, &dst)
	}

	if p.Caret >= 0 && now.UnixMilli()/caretBlink.Milliseconds()%2 == 0 {
		h := tex.h
		if h == 0 {
			if font := internal.Fonts.Font(p.FontSize); font != nil {
				h = int32(font.Height())
			}
		}
		caret := sdl.Rect{X: x + caretX - offset, Y: rect.Y + (rect.H-h)/2, W: caretWidth, H: h}
		color := rd.theme.CaretColor
		color.A = uint8(uint16(color.A) * uint16(p.Fore.A) / 255)
		if p.Text == "" {
			color.A = p.Fore.A
		}
		internal.FillRect(rd.r, &caret, color)
	}
}

// prefixWidth is the rendered width of the first n runes of text.
func (rd *renderer) prefixWidth(text string, n, size int, full int32) int32 {
	if n <= 0 || text == "" {
		return 0
	}
	if n >= utf8.RuneCountInString(text) {
		return full
	}

	i := 0
	for pos := range text {
		if i == n {
			font := internal.Fonts.Font(size)
			if font == nil {
				return 0
			}
			w, _, err := font.SizeUTF8(text[:pos])
			if err != nil {
				return 0
			}
			return int32(w)
		}
		i++
	}
	return full
}

func (rd *renderer) text(s string, size int) (textTexture, bool) {
	key := textKey{s, size}
	if t, ok := rd.texts[key]; ok {
		return t, true
	}

	font := internal.Fonts.Font(size)
	if font == nil {
		return textTexture{}, false
	}

	surface, err := font.RenderUTF8Blended(s, sdl.Color{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		logging.For("render").Debug("Failed to render text", "text", s, "error", err)
		return textTexture{}, false
	}
	defer surface.Free()

	texture, err := rd.r.CreateTextureFromSurface(surface)
	if err != nil {
		return textTexture{}, false
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)

	if len(rd.texts) >= maxCachedLabels {
		rd.flushTexts()
	}
	t := textTexture{texture: texture, w: surface.W, h: surface.H}
	rd.texts[key] = t
	return t, true
}

func (rd *renderer) drawImage(p *present.Primitive) {
	size := internal.Max32(int32(p.W), int32(p.H))
	texture, err := rd.icons.Texture(p.Image, size)
	if err != nil {
		return
	}

	color, ok := rd.theme.IconColors[p.Image]
	if !ok {
		color = internal.SDLColor(p.Fore)
	}
	texture.SetColorMod(color.R, color.G, color.B)
	texture.SetAlphaMod(p.Fore.A)

	rect := internal.SDLRect(p.Rect)
	rd.r.Copy(texture, nil, &rect)

	glyph, ok := internal.IconGlyphs[p.Image]
	if !ok {
		return
	}
	tex, ok := rd.text(glyph, int(size)*2/3)
	if !ok {
		return
	}
	g := rd.theme.IconGlyphColor
	tex.texture.SetColorMod(g.R, g.G, g.B)
	tex.texture.SetAlphaMod(p.Fore.A)
	rd.r.Copy(tex.texture, nil, &sdl.Rect{
		X: rect.X + (rect.W-tex.w)/2,
		Y: rect.Y + (rect.H-tex.h)/2,
		W: tex.w,
		H: tex.h,
	})
}
