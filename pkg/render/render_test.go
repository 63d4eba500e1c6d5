package render_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/cache"
	"github.com/dmitrymomot/blogkit/pkg/render"
)

func TestRender_Text(t *testing.T) {
	t.Parallel()

	r := render.New()
	ctx := context.Background()

	t.Run("paragraphs", func(t *testing.T) {
		t.Parallel()

		res, err := r.Render(ctx, render.Document{Body: "Hello\n\nWorld"})
		require.NoError(t, err)
		assert.Equal(t, "<p>Hello</p>\n<p>World</p>\n", res.HTML)
		assert.Equal(t, "Hello World", res.Excerpt)
		assert.Empty(t, res.FirstURL)
	})

	t.Run("markup is escaped", func(t *testing.T) {
		t.Parallel()

		res, err := r.Render(ctx, render.Document{Body: "<script>alert(1)</script>", Format: render.FormatText})
		require.NoError(t, err)
		assert.NotContains(t, res.HTML, "<script>")
		assert.Contains(t, res.HTML, "&lt;script&gt;")
	})

	t.Run("no breaks", func(t *testing.T) {
		t.Parallel()

		res, err := r.Render(ctx, render.Document{Body: "one\ntwo", NoBreaks: true})
		require.NoError(t, err)
		assert.NotContains(t, res.HTML, "<br />")
	})
}

func TestRender_HTML(t *testing.T) {
	t.Parallel()

	r := render.New()
	res, err := r.Render(context.Background(), render.Document{
		Body:   `<b>bold</b> <span class="x">plain</span> <a href="https://example.com/a" onclick="x()">link</a>` + "\n\nnext",
		Format: render.FormatHTML,
	})
	require.NoError(t, err)

	assert.Contains(t, res.HTML, "<strong>bold</strong>")
	assert.NotContains(t, res.HTML, "<span")
	assert.NotContains(t, res.HTML, "onclick")
	assert.Contains(t, res.HTML, "<p>next</p>")
	assert.Equal(t, "https://example.com/a", res.FirstURL)
}

func TestRender_HTMLEmptyHref(t *testing.T) {
	t.Parallel()

	res, err := render.New().Render(context.Background(), render.Document{
		Body:   `<a href="%0a">x</a>`,
		Format: render.FormatHTML,
	})
	require.NoError(t, err)
	assert.Empty(t, res.FirstURL)
	assert.Contains(t, res.HTML, ">x</a>")
}

func TestRender_HTMLAllowedTags(t *testing.T) {
	t.Parallel()

	r := render.New(render.WithAllowedTags("<h2>"))
	res, err := r.Render(context.Background(), render.Document{Body: "<h2>Title</h2><h3>Sub</h3>", Format: render.FormatHTML})
	require.NoError(t, err)

	assert.Contains(t, res.HTML, "<h2>Title</h2>")
	assert.NotContains(t, res.HTML, "<h3>")
}

func TestRender_Markdown(t *testing.T) {
	t.Parallel()

	r := render.New()
	ctx := context.Background()

	res, err := r.Render(ctx, render.Document{
		Body:   "# Title\n\nSome *text* with [a link](https://example.com).\n\n<script>alert(1)</script>\n",
		Format: render.FormatMarkdown,
	})
	require.NoError(t, err)

	assert.Contains(t, res.HTML, "<h1>Title</h1>")
	assert.Contains(t, res.HTML, "<em>text</em>")
	assert.NotContains(t, res.HTML, "<script")
	assert.Equal(t, "https://example.com", res.FirstURL)
	assert.True(t, strings.HasPrefix(res.Excerpt, "Title Some text with a link."))
}

func TestRender_MoreMarker(t *testing.T) {
	t.Parallel()

	r := render.New()
	res, err := r.Render(context.Background(), render.Document{
		Body: "Intro text\n\n<!--more Continue-->\n\nRest of the story",
	})
	require.NoError(t, err)

	assert.Equal(t, "Intro text", res.Excerpt)
	assert.NotContains(t, res.HTML, "more")
	assert.Contains(t, res.HTML, "Rest of the story")
}

func TestRender_ExcerptLength(t *testing.T) {
	t.Parallel()

	r := render.New(render.WithExcerptLength(10))
	res, err := r.Render(context.Background(), render.Document{Body: "one two three four"})
	require.NoError(t, err)
	assert.Equal(t, "one two...", res.Excerpt)
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := render.New().Render(context.Background(), render.Document{Body: "x", Format: "rst"})
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestRender_Cached(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[render.Result]()
	r := render.New(render.WithCache(c), render.WithCacheTTL(time.Minute))
	ctx := context.Background()

	doc := render.Document{Body: "cached body"}
	first, err := r.Render(ctx, doc)
	require.NoError(t, err)
	second, err := r.Render(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())

	_, err = r.Render(ctx, render.Document{Body: "cached body", NoBreaks: true})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want render.Format
	}{
		{"", render.FormatText},
		{"txt", render.FormatText},
		{"HTML", render.FormatHTML},
		{"md", render.FormatMarkdown},
		{"markdown", render.FormatMarkdown},
	}
	for _, tt := range tests {
		got, err := render.ParseFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := render.ParseFormat("docx")
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}
