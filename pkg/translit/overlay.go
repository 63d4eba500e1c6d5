package translit

import (
	"strings"

	"golang.org/x/text/language"
)

// Overlay identifies a locale specific set of replacement rules.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayGerman
	OverlayDanish
	OverlayCatalan
	OverlaySerbian
)

var overlays = map[Overlay]map[rune]string{
	OverlayGerman: {
		'Ä': "Ae", 'ä': "ae",
		'Ö': "Oe", 'ö': "oe",
		'Ü': "Ue", 'ü': "ue",
		'ß': "ss",
	},
	OverlayDanish: {
		'Æ': "Ae", 'æ': "ae",
		'Ø': "Oe", 'ø': "oe",
		'Å': "Aa", 'å': "aa",
	},
	OverlaySerbian: {
		'Đ': "DJ", 'đ': "dj",
	},
}

// catalanLigature is the flown-dot "l·l" spelling.
const catalanLigature = "l·l"

var supportedLocales = []language.Tag{
	language.MustParse("en"),
	language.MustParse("de"),
	language.MustParse("da"),
	language.MustParse("ca"),
	language.MustParse("sr"),
	language.MustParse("bs"),
}

// SupportedLocales returns the languages that have distinct transliteration
// rules, with English (no overlay) first.
func SupportedLocales() []language.Tag {
	out := make([]language.Tag, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// OverlayFor returns the overlay for a locale identifier such as "de_DE",
// "de-CH", "da_DK.UTF-8" or "sr_RS@latin". Unknown or malformed locales get
// OverlayNone.
func OverlayFor(locale string) Overlay {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	parts := strings.Split(strings.ReplaceAll(locale, "_", "-"), "-")
	if len(parts) > 2 {
		parts = parts[:2]
	}

	tag, err := language.Parse(strings.Join(parts, "-"))
	if err != nil {
		if tag, err = language.Parse(parts[0]); err != nil {
			return OverlayNone
		}
	}

	base, conf := tag.Base()
	if conf == language.No {
		return OverlayNone
	}

	switch base.String() {
	case "de":
		return OverlayGerman
	case "da":
		return OverlayDanish
	case "ca":
		return OverlayCatalan
	case "sr", "bs":
		return OverlaySerbian
	default:
		return OverlayNone
	}
}
