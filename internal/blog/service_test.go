package blog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/internal/blog"
	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/slug"
	"github.com/dmitrymomot/blogkit/pkg/store"
)

func newService(t *testing.T, opts ...blog.Option) (*blog.Service, store.Store) {
	t.Helper()
	st := store.NewMemory()
	return blog.New(st, render.New(), opts...), st
}

func TestCreateArticle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("renders and assigns default category", func(t *testing.T) {
		t.Parallel()

		svc, st := newService(t)
		a, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "Hello World", Body: "First\n\nSecond"})
		require.NoError(t, err)

		assert.Equal(t, "hello-world", a.Slug)
		assert.Equal(t, "<p>First</p>\n<p>Second</p>\n", a.HTML)
		assert.Equal(t, "First Second", a.Excerpt)
		assert.Equal(t, store.StatusDraft, a.Status)
		assert.Equal(t, "text", a.Format)

		def, err := st.CategoryBySlug(ctx, "uncategorized")
		require.NoError(t, err)
		assert.Equal(t, "Uncategorized", def.Name)
		assert.Contains(t, a.CategoryIDs, def.ID)
	})

	t.Run("suffixes taken slugs", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		var slugs []string
		for range 3 {
			a, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "Same Title"})
			require.NoError(t, err)
			slugs = append(slugs, a.Slug)
		}
		assert.Equal(t, []string{"same-title", "same-title-1", "same-title-2"}, slugs)
	})

	t.Run("locale-aware slug", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		a, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "Grüße aus Köln", Locale: "de_DE"})
		require.NoError(t, err)
		assert.Equal(t, "gruesse-aus-koeln", a.Slug)
	})

	t.Run("explicit slug wins", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		a, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "Long title", Slug: "Short"})
		require.NoError(t, err)
		assert.Equal(t, "short", a.Slug)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)

		_, err := svc.CreateArticle(ctx, blog.ArticleInput{})
		require.ErrorIs(t, err, blog.ErrInvalidInput)

		_, err = svc.CreateArticle(ctx, blog.ArticleInput{Title: "x", Status: "archived"})
		require.ErrorIs(t, err, blog.ErrInvalidInput)

		_, err = svc.CreateArticle(ctx, blog.ArticleInput{Title: "x", Format: "docx"})
		require.ErrorIs(t, err, blog.ErrInvalidInput)

		_, err = svc.CreateArticle(ctx, blog.ArticleInput{Title: "!!!"})
		require.ErrorIs(t, err, blog.ErrInvalidInput)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "x", Categories: []string{"nope"}})
		require.ErrorIs(t, err, blog.ErrUnknownCategory)
	})

	t.Run("bounded attempts", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t, blog.WithMaxSlugAttempts(2))
		for range 2 {
			_, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "busy"})
			require.NoError(t, err)
		}
		_, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "busy"})
		require.ErrorIs(t, err, slug.ErrExhausted)
	})

	t.Run("concurrent creators get distinct slugs", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			seen  = map[string]bool{}
			count = 10
		)
		for range count {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "Race"})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[a.Slug] = true
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Len(t, seen, count)
	})
}

func TestCreateCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	c1, err := svc.CreateCategory(ctx, "Go Tips", "")
	require.NoError(t, err)
	c2, err := svc.CreateCategory(ctx, "Go Tips", "")
	require.NoError(t, err)

	assert.Equal(t, "go-tips", c1.Slug)
	assert.Equal(t, "go-tips-1", c2.Slug)

	a, err := svc.CreateArticle(ctx, blog.ArticleInput{Title: "Tip", Categories: []string{"go-tips", "go-tips"}})
	require.NoError(t, err)
	assert.Len(t, a.CategoryIDs, 1)

	_, err = svc.CreateCategory(ctx, " ", "")
	require.ErrorIs(t, err, blog.ErrInvalidInput)
}

func TestImport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	a, err := svc.Import(ctx, []byte("---\ntitle: Imported Post\nstatus: publish\nformat: markdown\n---\n# Heading\n\nText with [link](https://example.com).\n"))
	require.NoError(t, err)

	assert.Equal(t, "imported-post", a.Slug)
	assert.Equal(t, store.StatusPublish, a.Status)
	assert.Contains(t, a.HTML, "<h1>Heading</h1>")

	got, err := svc.Article(ctx, "imported-post")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	list, err := svc.Articles(ctx, store.ListParams{Status: store.StatusPublish})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Import(ctx, []byte("---\ntitle: broken"))
	require.ErrorIs(t, err, blog.ErrInvalidInput)
}

func TestSlugFor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	s, err := svc.SlugFor(ctx, "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = svc.CreateArticle(ctx, blog.ArticleInput{Title: "Hello"})
	require.NoError(t, err)

	s, err = svc.SlugFor(ctx, "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-1", s)
}
