package translit

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// LocaleProvider reports the locale used to pick an overlay.
type LocaleProvider interface {
	Locale() string
}

// Fixed is a LocaleProvider that always returns the same locale.
type Fixed string

// Locale implements LocaleProvider.
func (f Fixed) Locale() string { return string(f) }

// LocaleFunc adapts a function to LocaleProvider.
type LocaleFunc func() string

// Locale implements LocaleProvider.
func (f LocaleFunc) Locale() string { return f() }

// RemoveAccents replaces accented characters in s with ASCII equivalents
// using the overlay selected by locale. ASCII input is returned as is.
func RemoveAccents(s, locale string) string {
	if !hasHighBytes(s) {
		return s
	}
	if !SeemsUTF8(s) {
		return latin1ToASCII(s)
	}

	ov := OverlayFor(locale)

	s = norm.NFC.String(s)
	if ov == OverlayCatalan {
		s = strings.ReplaceAll(s, catalanLigature, "ll")
	}

	extra := overlays[ov]

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if rep, ok := extra[r]; ok {
			b.WriteString(rep)
		} else if rep, ok := table[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// RemoveAccentsFor is RemoveAccents with the locale taken from p.
// A nil provider means no overlay.
func RemoveAccentsFor(s string, p LocaleProvider) string {
	if p == nil {
		return RemoveAccents(s, "")
	}
	return RemoveAccents(s, p.Locale())
}

func hasHighBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return true
		}
	}
	return false
}
