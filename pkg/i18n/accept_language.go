package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Headers longer than this are truncated before parsing.
const maxAcceptLanguageLength = 4096

// Preference is one entry of an Accept-Language header.
type Preference struct {
	Tag     language.Tag
	Quality float64
}

// ParseAcceptLanguage parses an Accept-Language header into preferences
// ordered by descending quality. Entries with the same quality keep header
// order. Malformed tags and the "*" wildcard are skipped; a missing or
// out-of-range q value counts as 1.
func ParseAcceptLanguage(header string) []Preference {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var prefs []Preference
	for part := range strings.SplitSeq(header, ",") {
		langPart, qPart, hasQ := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)
		if langPart == "" || langPart == "*" {
			continue
		}

		tag, err := language.Parse(langPart)
		if err != nil {
			continue
		}

		quality := 1.0
		if hasQ {
			qPart = strings.TrimSpace(qPart)
			if v, ok := strings.CutPrefix(qPart, "q="); ok {
				if q, err := strconv.ParseFloat(v, 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}
		if quality == 0 {
			continue
		}
		prefs = append(prefs, Preference{Tag: tag, Quality: quality})
	}

	slices.SortStableFunc(prefs, func(a, b Preference) int {
		return cmp.Compare(b.Quality, a.Quality)
	})
	return prefs
}

// Matcher picks the best supported locale for an Accept-Language header.
type Matcher struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewMatcher creates a Matcher over the supported tags. The first tag is
// the fallback used by language.Matcher internally; Match still reports no
// match when confidence is zero.
func NewMatcher(supported ...language.Tag) *Matcher {
	return &Matcher{
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}
}

// Match returns the supported locale that best satisfies header, as its
// BCP 47 string. ok is false when nothing in the header is close enough.
func (m *Matcher) Match(header string) (locale string, ok bool) {
	if len(m.supported) == 0 {
		return "", false
	}

	prefs := ParseAcceptLanguage(header)
	if len(prefs) == 0 {
		return "", false
	}

	tags := make([]language.Tag, len(prefs))
	for i, p := range prefs {
		tags[i] = p.Tag
	}

	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return m.supported[idx].String(), true
}

// MatchOr is Match with a fallback for the no-match case.
func (m *Matcher) MatchOr(header, fallback string) string {
	if locale, ok := m.Match(header); ok {
		return locale
	}
	return fallback
}
