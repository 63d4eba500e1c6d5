// Package i18n negotiates content locales from HTTP Accept-Language headers.
//
// ParseAcceptLanguage turns a header into quality-ordered BCP 47 tags.
// Matcher maps a header onto a fixed set of supported locales using the
// CLDR-aware matcher from golang.org/x/text/language, so "de-AT" resolves
// to "de" and "sr-Latn-RS" to "sr":
//
//	m := i18n.NewMatcher(translit.SupportedLocales()...)
//	locale := m.MatchOr(r.Header.Get("Accept-Language"), "en")
package i18n
