package htmlsplit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/htmlsplit"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "no tags",
			input:    "plain text",
			expected: []string{"plain text"},
		},
		{
			name:     "tag at start and end",
			input:    "<b>bold</b>",
			expected: []string{"", "<b>", "bold", "</b>", ""},
		},
		{
			name:     "text around tags",
			input:    "Hello <em>there</em> world",
			expected: []string{"Hello ", "<em>", "there", "</em>", " world"},
		},
		{
			name:     "unterminated tag consumes the rest",
			input:    "text <a href=\"x",
			expected: []string{"text ", "<a href=\"x"},
		},
		{
			name:     "comment is opaque",
			input:    "a<!-- <b>not a tag</b> -->b",
			expected: []string{"a", "<!-- <b>not a tag</b> -->", "b"},
		},
		{
			name:     "shortest comment",
			input:    "<!-->x",
			expected: []string{"", "<!-->", "x"},
		},
		{
			name:     "unterminated comment consumes the rest",
			input:    "a<!-- open <p>",
			expected: []string{"a", "<!-- open <p>"},
		},
		{
			name:     "cdata is opaque",
			input:    "<![CDATA[ a > b ]]>tail",
			expected: []string{"", "<![CDATA[ a > b ]]>", "tail"},
		},
		{
			name:     "unterminated cdata consumes the rest",
			input:    "x<![CDATA[ ] ]>",
			expected: []string{"x", "<![CDATA[ ] ]>"},
		},
		{
			name:     "lone angle bracket at end",
			input:    "a<",
			expected: []string{"a", "<", ""},
		},
		{
			name:     "adjacent tags",
			input:    "<p><br></p>",
			expected: []string{"", "<p>", "", "<br>", "", "</p>", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, htmlsplit.Split(tt.input))
		})
	}
}

func TestSplit_RoundTripAndParity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<",
		">",
		"<<>>",
		"a < b > c",
		"<p>Hello\n<a href=\"x\ny\">link</a></p>",
		"<!-- c --><![CDATA[x]]><br/>",
		"<!---->--><![CDATA[]]]]>",
		"text <unterminated",
		"caf\xc3\xa9 <i>\xff</i>",
	}

	for _, in := range inputs {
		parts := htmlsplit.Split(in)
		require.Equal(t, in, strings.Join(parts, ""), "round trip for %q", in)
		require.Equal(t, 1, len(parts)%2, "odd length for %q", in)

		for i, p := range parts {
			if htmlsplit.IsTag(i) {
				assert.True(t, strings.HasPrefix(p, "<"), "token %d of %q must start with '<'", i, in)
			} else {
				assert.NotContains(t, p, "<", "text token %d of %q", i, in)
			}
		}
	}
}

func TestReplaceInTags(t *testing.T) {
	t.Parallel()

	t.Run("single pair only touches tags", func(t *testing.T) {
		t.Parallel()

		in := "line\n<a title=\"one\ntwo\">x\ny</a>"
		out := htmlsplit.ReplaceInTags(in, map[string]string{"\n": " <!-- wpnl --> "})
		assert.Equal(t, "line\n<a title=\"one <!-- wpnl --> two\">x\ny</a>", out)
	})

	t.Run("multiple pairs prefer the longest key", func(t *testing.T) {
		t.Parallel()

		in := "ab <ab abc>"
		out := htmlsplit.ReplaceInTags(in, map[string]string{
			"ab":  "1",
			"abc": "2",
		})
		assert.Equal(t, "ab <1 2>", out)
	})

	t.Run("multiple pairs do not rescan replacements", func(t *testing.T) {
		t.Parallel()

		in := "<x a b>"
		out := htmlsplit.ReplaceInTags(in, map[string]string{
			"a": "b",
			"b": "a",
		})
		assert.Equal(t, "<x b a>", out)
	})

	t.Run("single pair matches general case", func(t *testing.T) {
		t.Parallel()

		in := "<p class=\"a\na\">a\n</p>"
		single := htmlsplit.ReplaceInTags(in, map[string]string{"\n": "|"})
		multi := htmlsplit.ReplaceInTags(in, map[string]string{"\n": "|", "zz-unused": "?"})
		assert.Equal(t, single, multi)
	})

	t.Run("no pairs returns input", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "<p>x</p>", htmlsplit.ReplaceInTags("<p>x</p>", nil))
		assert.Equal(t, "<p>x</p>", htmlsplit.ReplaceInTags("<p>x</p>", map[string]string{"": "y"}))
	})

	t.Run("comments are tag tokens", func(t *testing.T) {
		t.Parallel()

		out := htmlsplit.ReplaceInTags("a\n<!-- b\nc -->", map[string]string{"\n": "_"})
		assert.Equal(t, "a\n<!-- b_c -->", out)
	})
}
