package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/render"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	t.Run("with front matter", func(t *testing.T) {
		t.Parallel()

		fm, body, err := render.ParseSource([]byte(`---
title: Hello World
status: publish
format: markdown
locale: de
categories: [news, go]
featured: true
publish_at: 2026-05-01T10:00:00Z
---
# Hello

Body.
`))
		require.NoError(t, err)
		assert.Equal(t, "Hello World", fm.Title)
		assert.Equal(t, "publish", fm.Status)
		assert.Equal(t, "markdown", fm.Format)
		assert.Equal(t, "de", fm.Locale)
		assert.Equal(t, []string{"news", "go"}, fm.Categories)
		assert.True(t, fm.Featured)
		require.NotNil(t, fm.PublishAt)
		assert.True(t, fm.PublishAt.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))
		assert.Equal(t, "# Hello\n\nBody.\n", body)
	})

	t.Run("without front matter", func(t *testing.T) {
		t.Parallel()

		fm, body, err := render.ParseSource([]byte("Just text\n---\nmore"))
		require.NoError(t, err)
		assert.Empty(t, fm.Title)
		assert.Equal(t, "Just text\n---\nmore", body)
	})

	t.Run("empty header", func(t *testing.T) {
		t.Parallel()

		fm, body, err := render.ParseSource([]byte("---\n---\nBody"))
		require.NoError(t, err)
		assert.Empty(t, fm.Title)
		assert.Equal(t, "Body", body)
	})

	t.Run("crlf", func(t *testing.T) {
		t.Parallel()

		fm, body, err := render.ParseSource([]byte("---\r\ntitle: Win\r\n---\r\nBody"))
		require.NoError(t, err)
		assert.Equal(t, "Win", fm.Title)
		assert.Equal(t, "Body", body)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"---", "---\ntitle: x\n", "---\ntitle: [unclosed\n---\nbody"} {
			_, _, err := render.ParseSource([]byte(in))
			require.ErrorIs(t, err, render.ErrInvalidFrontMatter, in)
		}
	})
}
