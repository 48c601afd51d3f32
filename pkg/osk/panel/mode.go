package panel

import (
	"fmt"
	"sort"
	"strings"
)

// Mode identifies a panel. Values are bit flags so that a request can ask for
// several panels at once.
type Mode uint32

const (
	ModeDefault            Mode = 0x00000000
	ModeGerman             Mode = 0x00000001
	ModeEnglish            Mode = 0x00000002
	ModeSpanish            Mode = 0x00000004
	ModeFrench             Mode = 0x00000008
	ModeItalian            Mode = 0x00000010
	ModeDutch              Mode = 0x00000020
	ModePortuguese         Mode = 0x00000040
	ModeRussian            Mode = 0x00000080
	ModeJapanese           Mode = 0x00000100
	ModeDefaultNoJapanese  Mode = 0x00000200
	ModePolish             Mode = 0x00000400
	ModeKorean             Mode = 0x00001000
	ModeTurkey             Mode = 0x00002000
	ModeTraditionalChinese Mode = 0x00004000
	ModeSimplifiedChinese  Mode = 0x00008000
	ModePortugueseBrazil   Mode = 0x00010000
	ModeDanish             Mode = 0x00020000
	ModeSwedish            Mode = 0x00040000
	ModeNorwegian          Mode = 0x00080000
	ModeFinnish            Mode = 0x00100000
	ModeJapaneseHiragana   Mode = 0x00200000
	ModeJapaneseKatakana   Mode = 0x00400000
	ModeAlphabetFullWidth  Mode = 0x00800000
	ModeAlphabet           Mode = 0x01000000
	ModeLatin              Mode = 0x02000000
	ModeNumeralFullWidth   Mode = 0x04000000
	ModeNumeral            Mode = 0x08000000
	ModeURL                Mode = 0x10000000
	ModePassword           Mode = 0x20000000
)

var modeNames = map[string]Mode{
	"german":              ModeGerman,
	"english":             ModeEnglish,
	"spanish":             ModeSpanish,
	"french":              ModeFrench,
	"italian":             ModeItalian,
	"dutch":               ModeDutch,
	"portuguese":          ModePortuguese,
	"russian":             ModeRussian,
	"japanese":            ModeJapanese,
	"polish":              ModePolish,
	"korean":              ModeKorean,
	"turkey":              ModeTurkey,
	"traditional_chinese": ModeTraditionalChinese,
	"simplified_chinese":  ModeSimplifiedChinese,
	"portuguese_brazil":   ModePortugueseBrazil,
	"danish":              ModeDanish,
	"swedish":             ModeSwedish,
	"norwegian":           ModeNorwegian,
	"finnish":             ModeFinnish,
	"japanese_hiragana":   ModeJapaneseHiragana,
	"japanese_katakana":   ModeJapaneseKatakana,
	"alphabet_full_width": ModeAlphabetFullWidth,
	"alphabet":            ModeAlphabet,
	"latin":               ModeLatin,
	"numeral_full_width":  ModeNumeralFullWidth,
	"numeral":             ModeNumeral,
	"url":                 ModeURL,
	"password":            ModePassword,
}

// restrictedModes need the host to declare language support before they are offered.
const restrictedModes = ModePolish | ModeKorean | ModeTurkey | ModeTraditionalChinese |
	ModeSimplifiedChinese | ModePortugueseBrazil | ModeDanish | ModeSwedish |
	ModeNorwegian | ModeFinnish

// ParseMode resolves a single mode name such as "english" or "portuguese_brazil".
func ParseMode(name string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// ParseModes resolves a comma separated list of mode names into a bitmask.
func ParseModes(list string) (Mode, error) {
	var modes Mode
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m, err := ParseMode(name)
		if err != nil {
			return 0, err
		}
		modes |= m
	}
	return modes, nil
}

func (m Mode) Has(other Mode) bool {
	return m&other != 0
}

func (m Mode) restricted() bool {
	return restrictedModes.Has(m)
}

func (m Mode) String() string {
	if m == ModeDefault {
		return "default"
	}
	if m == ModeDefaultNoJapanese {
		return "default_no_japanese"
	}

	var names []string
	for name, mode := range modeNames {
		if m.Has(mode) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("mode(0x%x)", uint32(m))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
