package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a Store kept in process memory.
type Memory struct {
	mu         sync.RWMutex
	articles   map[string]Article
	categories map[string]Category
	now        func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		articles:   make(map[string]Article),
		categories: make(map[string]Category),
		now:        time.Now,
	}
}

func (m *Memory) ArticleSlugExists(_ context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.articles[slug]
	return ok, nil
}

func (m *Memory) CategorySlugExists(_ context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.categories[slug]
	return ok, nil
}

func (m *Memory) CreateArticle(_ context.Context, a *Article) error {
	if err := prepareArticle(a, m.now()); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[a.Slug]; ok {
		return ErrDuplicateSlug
	}
	for _, id := range a.CategoryIDs {
		if !m.hasCategoryID(id) {
			return ErrNotFound
		}
	}
	cp := *a
	cp.CategoryIDs = slices.Clone(a.CategoryIDs)
	m.articles[a.Slug] = cp
	return nil
}

func (m *Memory) CreateCategory(_ context.Context, c *Category) error {
	prepareCategory(c, m.now())

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[c.Slug]; ok {
		return ErrDuplicateSlug
	}
	m.categories[c.Slug] = *c
	return nil
}

func (m *Memory) ArticleBySlug(_ context.Context, slug string) (Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.articles[slug]
	if !ok {
		return Article{}, ErrNotFound
	}
	a.CategoryIDs = slices.Clone(a.CategoryIDs)
	return a, nil
}

func (m *Memory) CategoryBySlug(_ context.Context, slug string) (Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[slug]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

// ListArticles returns newest first.
func (m *Memory) ListArticles(_ context.Context, p ListParams) ([]Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Article, 0, len(m.articles))
	for _, a := range m.articles {
		if p.Status != "" && a.Status != p.Status {
			continue
		}
		if p.CategoryID != uuid.Nil && !containsID(a.CategoryIDs, p.CategoryID) {
			continue
		}
		a.CategoryIDs = slices.Clone(a.CategoryIDs)
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Article) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	if len(out) > p.limit() {
		out = out[:p.limit()]
	}
	return out, nil
}

func (m *Memory) EnsureDefaultCategory(ctx context.Context, name, slug string) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.categories[slug]; ok {
		return c, nil
	}
	c := Category{Name: name, Slug: slug}
	prepareCategory(&c, m.now())
	m.categories[slug] = c
	return c, nil
}

func (m *Memory) Migrate(context.Context) error { return nil }
func (m *Memory) Ping(context.Context) error    { return nil }
func (m *Memory) Close() error                  { return nil }

// caller holds mu
func (m *Memory) hasCategoryID(id uuid.UUID) bool {
	for _, c := range m.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

var _ Store = (*Memory)(nil)
