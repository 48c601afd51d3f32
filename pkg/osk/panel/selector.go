package panel

import (
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"golang.org/x/text/language"
)

// MaxPanels is the most panels a single session offers.
const MaxPanels = 7

// Host describes the host's configured language and the restricted languages
// it declares support for.
type Host struct {
	Language  language.Tag
	Supported Mode
}

type Request struct {
	Modes            Mode
	PreferHostLocale bool
	// FirstView picks the initially active panel when several are offered.
	FirstView Mode
}

type Selection struct {
	Panels   []*Panel
	Active   int
	Password bool
}

var hostLanguages = []struct {
	tag  language.Tag
	mode Mode
}{
	{language.English, ModeEnglish},
	{language.French, ModeFrench},
	{language.Spanish, ModeSpanish},
	{language.German, ModeGerman},
	{language.Italian, ModeItalian},
	{language.Dutch, ModeDutch},
	{language.EuropeanPortuguese, ModePortuguese},
	{language.BrazilianPortuguese, ModePortugueseBrazil},
	{language.Russian, ModeRussian},
	{language.Japanese, ModeJapanese},
	{language.Polish, ModePolish},
	{language.Korean, ModeKorean},
	{language.Turkish, ModeTurkey},
	{language.TraditionalChinese, ModeTraditionalChinese},
	{language.SimplifiedChinese, ModeSimplifiedChinese},
	{language.Danish, ModeDanish},
	{language.Swedish, ModeSwedish},
	{language.Norwegian, ModeNorwegian},
	{language.MustParse("nb"), ModeNorwegian},
	{language.MustParse("nn"), ModeNorwegian},
	{language.Finnish, ModeFinnish},
}

var hostMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(hostLanguages))
	for i, hl := range hostLanguages {
		tags[i] = hl.tag
	}
	return language.NewMatcher(tags)
}()

// HostMode maps a host language onto its panel mode, defaulting to English.
// Only high confidence matches count; a neighbouring language is no match.
func HostMode(tag language.Tag) Mode {
	_, idx, confidence := hostMatcher.Match(tag)
	if confidence < language.High || idx < 0 || idx >= len(hostLanguages) {
		return ModeEnglish
	}
	return hostLanguages[idx].mode
}

// Select picks the ordered panels to offer for a request. It never fails: when
// nothing matches it falls back to the English panel.
func (c *Catalog) Select(req Request, host Host) Selection {
	logger := logging.For("panel")

	var sel Selection
	seen := make(map[Mode]bool)
	add := func(p *Panel) {
		if len(sel.Panels) >= MaxPanels || seen[p.Mode] {
			return
		}
		seen[p.Mode] = true
		sel.Panels = append(sel.Panels, p)
	}

	switch {
	case req.Modes.Has(ModePassword):
		// Password is the only panel offered and FirstView is ignored.
		sel.Password = true
		if p, ok := c.Lookup(ModePassword); ok {
			add(p)
		}

	case req.PreferHostLocale || req.Modes == ModeDefault || req.Modes == ModeDefaultNoJapanese:
		mode := HostMode(host.Language)
		if mode.restricted() && !host.Supported.Has(mode) {
			mode = ModeEnglish
		}
		if mode == ModeJapanese && req.Modes == ModeDefaultNoJapanese {
			mode = ModeEnglish
		}
		if p, ok := c.Lookup(mode); ok {
			add(p)
		}

	default:
		for _, p := range c.panels {
			if p.Mode == ModePassword || !req.Modes.Has(p.Mode) {
				continue
			}
			if p.Mode.restricted() && !host.Supported.Has(p.Mode) {
				continue
			}
			add(p)
		}
	}

	if len(sel.Panels) == 0 {
		logger.Warn("No OSK panel found. Using english panel.", "modes", req.Modes.String())
		if p, ok := c.Lookup(ModeEnglish); ok {
			add(p)
		} else if len(c.panels) > 0 {
			add(c.panels[0])
		}
	}

	if !sel.Password && req.FirstView != ModeDefault {
		for i, p := range sel.Panels {
			if p.Mode == req.FirstView {
				sel.Active = i
				break
			}
		}
	}

	logger.Debug("Selected OSK panels", "count", len(sel.Panels), "active", sel.Active, "password", sel.Password)
	return sel
}
