package slug

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	goslug "github.com/gosimple/slug"

	"github.com/dmitrymomot/blogkit/pkg/sanitizer"
	"github.com/dmitrymomot/blogkit/pkg/translit"
)

var (
	reOctet         = regexp.MustCompile(`%([a-fA-F0-9][a-fA-F0-9])`)
	reProtectedOct  = regexp.MustCompile(`---([a-fA-F0-9][a-fA-F0-9])---`)
	reEntity        = regexp.MustCompile(`&.+?;`)
	reDisallowed    = regexp.MustCompile(`[^%a-z0-9 _-]`)
	reWhitespace    = regexp.MustCompile(`\s+`)
	reHyphens       = regexp.MustCompile(`-+`)
	reEncodedOctets = regexp.MustCompile(`%[a-f0-9]{2}|%`)

	// Typographic spaces and dashes, percent-encoded, as entities and raw.
	dashes = strings.NewReplacer(
		"%c2%a0", "-", "%e2%80%93", "-", "%e2%80%94", "-",
		"&nbsp;", "-", "&#160;", "-",
		"&ndash;", "-", "&#8211;", "-",
		"&mdash;", "-", "&#8212;", "-",
		"\u00a0", "-", "\u2013", "-", "\u2014", "-",
		"/", "-",
	)

	// Inverted punctuation, angle and curly quotes, symbols and combining
	// accents, percent-encoded and raw.
	dropped = func() *strings.Replacer {
		chars := []string{
			"%c2%a1", "%c2%bf", "\u00a1", "\u00bf",
			"%c2%ab", "%c2%bb", "%e2%80%b9", "%e2%80%ba", "\u00ab", "\u00bb", "\u2039", "\u203a",
			"%e2%80%98", "%e2%80%99", "%e2%80%9c", "%e2%80%9d",
			"%e2%80%9a", "%e2%80%9b", "%e2%80%9e", "%e2%80%9f",
			"\u2018", "\u2019", "\u201c", "\u201d", "\u201a", "\u201b", "\u201e", "\u201f",
			"%c2%a9", "%c2%ae", "%c2%b0", "%e2%80%a6", "%e2%84%a2",
			"\u00a9", "\u00ae", "\u00b0", "\u2026", "\u2122",
			"%c2%b4", "%cb%8a", "%cc%81", "%cd%81", "\u00b4", "\u02ca", "\u0301", "\u0341",
			"%cc%80", "%cc%84", "%cc%8c", "\u0300", "\u0304", "\u030c",
		}
		pairs := make([]string, 0, len(chars)*2)
		for _, c := range chars {
			pairs = append(pairs, c, "")
		}
		return strings.NewReplacer(pairs...)
	}()

	times = strings.NewReplacer("%c3%97", "x", "\u00d7", "x")
)

// Make converts title into a slug: accents are transliterated, everything
// outside [a-z0-9_-] is removed and runs of separators collapse into a
// single hyphen. Titles without Latin content fall back to a Unicode
// transliteration. The result may be empty.
func Make(title string, opts ...Option) string {
	o := applyOptions(opts)

	s := SanitizeTitle(title, "", opts...)
	s = SanitizeWithDashes(s, opts...)
	s = tidy(reEncodedOctets.ReplaceAllString(s, ""))

	if s == "" && hasNonLatinLetters(title) {
		s = tidy(reDisallowed.ReplaceAllString(goslug.Make(sanitizer.StripTags(title, "")), ""))
	}

	return truncate(s, o.maxLength)
}

// SanitizeTitle transliterates accents in ModeSave and returns fallback
// when the result is empty.
func SanitizeTitle(title, fallback string, opts ...Option) string {
	o := applyOptions(opts)

	if o.mode == ModeSave {
		title = translit.RemoveAccentsFor(title, o.locale)
	}
	if title == "" {
		return fallback
	}
	return title
}

// SanitizeWithDashes lower-cases title and reduces it to letters, digits,
// underscores, hyphens and percent-encoded octets. Tags and HTML entities
// are removed; whitespace, dots and, in ModeSave, slashes and typographic
// dashes become hyphens.
func SanitizeWithDashes(title string, opts ...Option) string {
	o := applyOptions(opts)

	s := sanitizer.StripTags(title, "")

	// Keep well-formed octets, drop every other percent sign.
	s = reOctet.ReplaceAllString(s, "---${1}---")
	s = strings.ReplaceAll(s, "%", "")
	s = reProtectedOct.ReplaceAllString(s, "%${1}")

	if translit.SeemsUTF8(s) && utf8.ValidString(s) {
		s = strings.ToLower(s)
	} else {
		s = asciiLower(s)
	}

	if o.mode == ModeSave {
		s = dashes.Replace(s)
		s = dropped.Replace(s)
		s = times.Replace(s)
	}

	s = reEntity.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ".", "-")
	s = reDisallowed.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, "-")
	return tidy(s)
}

// hasNonLatinLetters reports whether s has letters the transliteration
// table does not cover, such as Cyrillic or Greek.
func hasNonLatinLetters(s string) bool {
	for _, r := range s {
		if r >= utf8.RuneSelf && unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func tidy(s string) string {
	return strings.Trim(reHyphens.ReplaceAllString(s, "-"), "-")
}

// truncate cuts s to at most n runes, preferring a hyphen boundary.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:n])
	if runes[n] != '-' {
		if i := strings.LastIndexByte(cut, '-'); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.Trim(cut, "-")
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
