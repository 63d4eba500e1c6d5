package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/slug"
	"github.com/dmitrymomot/blogkit/pkg/store"
)

// Service creates and reads articles: it renders bodies, assigns unique
// slugs and resolves categories.
type Service struct {
	store    store.Store
	renderer *render.Renderer
	log      *slog.Logger

	defaultName string
	defaultSlug string
	locale      string
	maxAttempts int
	maxLength   int
}

func New(st store.Store, r *render.Renderer, opts ...Option) *Service {
	s := &Service{
		store:       st,
		renderer:    r,
		log:         slog.New(slog.DiscardHandler),
		defaultName: "Uncategorized",
		defaultSlug: "uncategorized",
		maxAttempts: slug.DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ArticleInput describes a new article. Slug, when set, is used as the
// slug source instead of Title. Categories are category slugs.
type ArticleInput struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug,omitempty"`
	Body       string     `json:"body"`
	Format     string     `json:"format,omitempty"`
	Status     string     `json:"status,omitempty"`
	Locale     string     `json:"locale,omitempty"`
	NoBreaks   bool       `json:"no_breaks,omitempty"`
	Featured   bool       `json:"featured,omitempty"`
	PublishAt  *time.Time `json:"publish_at,omitempty"`
	Categories []string   `json:"categories,omitempty"`
}

// Init makes sure the default category exists.
func (s *Service) Init(ctx context.Context) (store.Category, error) {
	return s.store.EnsureDefaultCategory(ctx, s.defaultName, s.defaultSlug)
}

// CreateArticle renders the body and stores the article under the first
// free slug derived from its title.
func (s *Service) CreateArticle(ctx context.Context, in ArticleInput) (store.Article, error) {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Slug) == "" {
		return store.Article{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	status, err := store.ParseStatus(in.Status)
	if err != nil {
		return store.Article{}, errors.Join(ErrInvalidInput, err)
	}
	format, err := render.ParseFormat(in.Format)
	if err != nil {
		return store.Article{}, errors.Join(ErrInvalidInput, err)
	}

	res, err := s.renderer.Render(ctx, render.Document{Body: in.Body, Format: format, NoBreaks: in.NoBreaks})
	if err != nil {
		return store.Article{}, err
	}

	categoryIDs, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return store.Article{}, err
	}

	a := store.Article{
		Title:       in.Title,
		Body:        in.Body,
		Format:      string(format),
		HTML:        res.HTML,
		Excerpt:     res.Excerpt,
		Status:      status,
		IsFeatured:  in.Featured,
		PublishAt:   in.PublishAt,
		CategoryIDs: categoryIDs,
	}

	source := in.Title
	if strings.TrimSpace(in.Slug) != "" {
		source = in.Slug
	}

	claim := slug.ClaimFunc(func(ctx context.Context, candidate string) error {
		a.ID = uuid.Nil
		a.Slug = candidate
		err := s.store.CreateArticle(ctx, &a)
		if errors.Is(err, store.ErrDuplicateSlug) {
			return errors.Join(slug.ErrTaken, err)
		}
		return err
	})

	if _, err := slug.Reserve(ctx, source, claim, s.slugOptions(in.Locale)...); err != nil {
		if errors.Is(err, slug.ErrEmpty) {
			return store.Article{}, errors.Join(ErrInvalidInput, err)
		}
		s.log.ErrorContext(ctx, "article not created", slog.String("title", in.Title), slog.String("error", err.Error()))
		return store.Article{}, err
	}

	s.log.InfoContext(ctx, "article created",
		slog.String("id", a.ID.String()),
		slog.String("slug", a.Slug),
		slog.String("status", string(a.Status)),
	)
	return a, nil
}

// CreateCategory stores a category under the first free slug for name.
func (s *Service) CreateCategory(ctx context.Context, name, locale string) (store.Category, error) {
	if strings.TrimSpace(name) == "" {
		return store.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	c := store.Category{Name: name}
	claim := slug.ClaimFunc(func(ctx context.Context, candidate string) error {
		c.ID = uuid.Nil
		c.Slug = candidate
		err := s.store.CreateCategory(ctx, &c)
		if errors.Is(err, store.ErrDuplicateSlug) {
			return errors.Join(slug.ErrTaken, err)
		}
		return err
	})

	if _, err := slug.Reserve(ctx, name, claim, s.slugOptions(locale)...); err != nil {
		if errors.Is(err, slug.ErrEmpty) {
			return store.Category{}, errors.Join(ErrInvalidInput, err)
		}
		return store.Category{}, err
	}

	s.log.InfoContext(ctx, "category created", slog.String("slug", c.Slug))
	return c, nil
}

// Import creates an article from a source file with YAML front matter.
// Front matter fields fill the input; the file body becomes the article
// body.
func (s *Service) Import(ctx context.Context, content []byte) (store.Article, error) {
	fm, body, err := render.ParseSource(content)
	if err != nil {
		return store.Article{}, errors.Join(ErrInvalidInput, err)
	}
	return s.CreateArticle(ctx, ArticleInput{
		Title:      fm.Title,
		Slug:       fm.Slug,
		Body:       body,
		Format:     fm.Format,
		Status:     fm.Status,
		Locale:     fm.Locale,
		Featured:   fm.Featured,
		PublishAt:  fm.PublishAt,
		Categories: fm.Categories,
	})
}

func (s *Service) Article(ctx context.Context, slug string) (store.Article, error) {
	return s.store.ArticleBySlug(ctx, slug)
}

func (s *Service) Articles(ctx context.Context, p store.ListParams) ([]store.Article, error) {
	return s.store.ListArticles(ctx, p)
}

func (s *Service) Category(ctx context.Context, slug string) (store.Category, error) {
	return s.store.CategoryBySlug(ctx, slug)
}

// SlugFor previews the slug an article titled title would get, without
// reserving it.
func (s *Service) SlugFor(ctx context.Context, title, locale string) (string, error) {
	return slug.Unique(ctx, title, slug.ExistsFunc(s.store.ArticleSlugExists), s.slugOptions(locale)...)
}

func (s *Service) resolveCategories(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	if len(slugs) == 0 {
		c, err := s.Init(ctx)
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{c.ID}, nil
	}

	ids := make([]uuid.UUID, 0, len(slugs))
	for _, cs := range slugs {
		c, err := s.store.CategoryBySlug(ctx, cs)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cs)
		}
		if err != nil {
			return nil, err
		}
		if !containsID(ids, c.ID) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (s *Service) slugOptions(locale string) []slug.Option {
	if locale == "" {
		locale = s.locale
	}
	return []slug.Option{
		slug.WithLocale(locale),
		slug.MaxAttempts(s.maxAttempts),
		slug.MaxLength(s.maxLength),
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
