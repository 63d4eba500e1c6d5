package autop_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/blogkit/pkg/autop"
)

func TestAutop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []autop.Option
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    " \n\t\n ",
			expected: "",
		},
		{
			name:     "two paragraphs",
			input:    "Hello\n\nWorld",
			expected: "<p>Hello</p>\n<p>World</p>\n",
		},
		{
			name:     "single line",
			input:    "Hello",
			expected: "<p>Hello</p>\n",
		},
		{
			name:     "line break inside paragraph",
			input:    "one\ntwo",
			expected: "<p>one<br />\ntwo</p>\n",
		},
		{
			name:     "line break without breaks",
			input:    "one\ntwo",
			opts:     []autop.Option{autop.WithoutBreaks()},
			expected: "<p>one\ntwo</p>\n",
		},
		{
			name:     "windows line endings",
			input:    "one\r\n\r\ntwo",
			expected: "<p>one</p>\n<p>two</p>\n",
		},
		{
			name:     "three or more newlines",
			input:    "a\n\n\n\nb",
			expected: "<p>a</p>\n<p>b</p>\n",
		},
		{
			name:     "double br becomes paragraph break",
			input:    "a<br><br />b",
			expected: "<p>a</p>\n<p>b</p>\n",
		},
		{
			name:     "block element is not wrapped",
			input:    "<div>content</div>",
			expected: "<div>content</div>\n",
		},
		{
			name:     "heading followed by text",
			input:    "<h2>Title</h2>\nBody text",
			expected: "<h2>Title</h2>\n<p>Body text</p>\n",
		},
		{
			name:     "list is not wrapped",
			input:    "<ul>\n<li>one</li>\n<li>two</li>\n</ul>",
			expected: "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n",
		},
		{
			name:     "blockquote contents get paragraphs",
			input:    "<blockquote>Quote</blockquote>",
			expected: "<blockquote><p>Quote</p></blockquote>\n",
		},
		{
			name:     "newline inside attribute survives",
			input:    "<a title=\"one\ntwo\">link</a>",
			expected: "<p><a title=\"one\ntwo\">link</a></p>\n",
		},
		{
			name:     "inline markup stays inside paragraph",
			input:    "Some <strong>bold</strong> text",
			expected: "<p>Some <strong>bold</strong> text</p>\n",
		},
		{
			name:     "option elements collapse",
			input:    "<select>\n<option>a</option>\n<option>b</option>\n</select>",
			expected: "<p><select><option>a</option><option>b</option></select></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, autop.Autop(tt.input, tt.opts...))
		})
	}
}

func TestAutop_PreservesPre(t *testing.T) {
	t.Parallel()

	t.Run("pre only", func(t *testing.T) {
		t.Parallel()

		out := autop.Autop("<pre>\nline1\nline2\n</pre>")
		assert.Equal(t, "<pre>\nline1\nline2\n</pre>\n", out)
	})

	t.Run("pre between paragraphs", func(t *testing.T) {
		t.Parallel()

		out := autop.Autop("Intro\n\n<pre>\nline1\n\nline2\n</pre>\n\nOutro")
		assert.Contains(t, out, "<pre>\nline1\n\nline2\n</pre>")
		assert.Contains(t, out, "<p>Intro</p>")
		assert.Contains(t, out, "<p>Outro</p>")
		assert.NotContains(t, out, "pre-tag")
	})

	t.Run("several pre blocks", func(t *testing.T) {
		t.Parallel()

		out := autop.Autop("<pre>a\nb</pre>\n\n<pre>c\n\nd</pre>")
		assert.Contains(t, out, "<pre>a\nb</pre>")
		assert.Contains(t, out, "<pre>c\n\nd</pre>")
	})

	t.Run("stray closing tag dropped", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "<p>ab</p>\n<p>c</p>\n", autop.Autop("a</pre>b\n\nc"))

		out := autop.Autop("x</pre>y\n\n<pre>z</pre>")
		assert.Contains(t, out, "<p>xy</p>")
		assert.Contains(t, out, "<pre>z</pre>")
		assert.Equal(t, 1, strings.Count(out, "</pre>"))
	})
}

func TestAutop_ScriptAndStyleKeepNewlines(t *testing.T) {
	t.Parallel()

	out := autop.Autop("<script>\nvar a = 1;\nvar b = 2;\n</script>")
	assert.Contains(t, out, "var a = 1;\nvar b = 2;")
	assert.NotContains(t, out, "var a = 1;<br />")
	assert.NotContains(t, out, "WPPreserveNewline")

	out = autop.Autop("<style>\nbody{}\np{}\n</style>")
	assert.Contains(t, out, "body{}\np{}")
	assert.NotContains(t, out, "body{}<br />")
}

func TestAutop_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello\n\nWorld",
		"Just one paragraph.",
		"First line\nsecond line\n\nNext paragraph",
		"<ul>\n<li>one</li>\n<li>two</li>\n</ul>",
		"<blockquote>\n<p>Quote</p>\n</blockquote>",
		"Intro\n\n<div>Block</div>\n\nOutro",
	}

	for _, in := range inputs {
		once := autop.Autop(in)
		assert.Equal(t, once, autop.Autop(once), "autop should be idempotent for %q", in)

		onceNoBr := autop.Autop(in, autop.WithoutBreaks())
		assert.Equal(t, onceNoBr, autop.Autop(onceNoBr, autop.WithoutBreaks()), "autop without breaks should be idempotent for %q", in)
	}
}

// A block opened and closed on the same line as its text is only stable up
// to whitespace: the first pass emits "<blockquote><p>", the second moves
// the paragraph onto its own line.
func TestAutop_IdempotentUpToWhitespace(t *testing.T) {
	t.Parallel()

	in := "<blockquote>quote\nline</blockquote>\n\nafter"
	once := autop.Autop(in)
	twice := autop.Autop(once)

	assert.Contains(t, once, "<blockquote><p>")
	assert.Contains(t, twice, "<blockquote>\n<p>")
	assert.NotEqual(t, once, twice)
	assert.Equal(t, stripSpace(once), stripSpace(twice))
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestReverse(t *testing.T) {
	t.Parallel()

	html := autop.Autop("First <b>bold</b>\nsecond\n\nThird")
	out := autop.Reverse(html)

	assert.Equal(t, "First <strong>bold</strong>\nsecond\n\nThird", out)
}
