package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/blogkit/pkg/i18n"
)

func tagsOf(prefs []i18n.Preference) []string {
	out := make([]string, len(prefs))
	for i, p := range prefs {
		out[i] = p.Tag.String()
	}
	return out
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "de", []string{"de"}},
		{"quality ordering", "de;q=0.5,pl;q=0.9,en;q=0.8", []string{"pl", "en", "de"}},
		{"stable for equal quality", "en,pl", []string{"en", "pl"}},
		{"case and whitespace", " EN-us , pl ; q=0.9 ", []string{"en-US", "pl"}},
		{"wildcard skipped", "*,en;q=0.5", []string{"en"}},
		{"invalid tag skipped", "not_a_tag!!,da", []string{"da"}},
		{"invalid quality is 1", "en;q=invalid,pl;q=0.5", []string{"en", "pl"}},
		{"out of range quality is 1", "pl;q=0.5,en;q=2.5", []string{"en", "pl"}},
		{"zero quality dropped", "fr;q=0,de", []string{"de"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tagsOf(i18n.ParseAcceptLanguage(tt.header))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAcceptLanguage_Oversized(t *testing.T) {
	t.Parallel()

	prefs := i18n.ParseAcceptLanguage(strings.Repeat("en,", 3000) + "pl")
	require.NotEmpty(t, prefs)
	for _, p := range prefs {
		assert.Equal(t, "en", p.Tag.String())
	}
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	m := i18n.NewMatcher(
		language.MustParse("en"),
		language.MustParse("de"),
		language.MustParse("da"),
		language.MustParse("sr"),
	)

	tests := []struct {
		name   string
		header string
		locale string
		ok     bool
	}{
		{"exact", "de", "de", true},
		{"regional variant", "de-AT,en;q=0.5", "de", true},
		{"quality wins", "en;q=0.4,da;q=0.9", "da", true},
		{"script variant", "sr-Latn-RS", "sr", true},
		{"unsupported only", "ja", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			locale, ok := m.Match(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.locale, locale)
		})
	}

	assert.Equal(t, "en", m.MatchOr("ja", "en"))
	assert.Equal(t, "de", m.MatchOr("de-CH", "en"))
}

func TestMatcher_NoSupported(t *testing.T) {
	t.Parallel()

	_, ok := i18n.NewMatcher().Match("en")
	assert.False(t, ok)
}
