package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/blogkit/pkg/db"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const pgArticleColumns = `id, title, slug, body, format, html, excerpt, status, is_featured, publish_at, created_at`

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool  *pgxpool.Pool
	table string
	log   *slog.Logger
}

// OpenPostgres connects using cfg. The returned store owns the pool.
func OpenPostgres(ctx context.Context, cfg db.Config, log *slog.Logger) (*Postgres, error) {
	pool, err := db.Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	p := NewPostgres(pool, log)
	if cfg.MigrationsTable != "" {
		p.table = cfg.MigrationsTable
	}
	return p, nil
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool, log *slog.Logger) *Postgres {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Postgres{pool: pool, table: "schema_migrations", log: log}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if err := db.Migrate(ctx, p.pool, migrations, "migrations/postgres", p.table, p.log); err != nil {
		return errors.Join(ErrMigrate, err)
	}
	return nil
}

func (p *Postgres) ArticleSlugExists(ctx context.Context, slug string) (bool, error) {
	return p.exists(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`, slug)
}

func (p *Postgres) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	return p.exists(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug)
}

func (p *Postgres) exists(ctx context.Context, query, slug string) (bool, error) {
	var ok bool
	if err := p.pool.QueryRow(ctx, query, slug).Scan(&ok); err != nil {
		return false, errors.Join(ErrQuery, err)
	}
	return ok, nil
}

func (p *Postgres) CreateArticle(ctx context.Context, a *Article) error {
	if err := prepareArticle(a, time.Now()); err != nil {
		return err
	}

	return db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO articles (`+pgArticleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			a.ID, a.Title, a.Slug, a.Body, a.Format, a.HTML, a.Excerpt, string(a.Status), a.IsFeatured, a.PublishAt, a.CreatedAt,
		); err != nil {
			return pgError(err)
		}

		if len(a.CategoryIDs) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, cid := range a.CategoryIDs {
			batch.Queue(`INSERT INTO article_categories (category_id, article_id) VALUES ($1, $2)`, cid, a.ID)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return pgError(err)
		}
		return nil
	})
}

func (p *Postgres) CreateCategory(ctx context.Context, c *Category) error {
	prepareCategory(c, time.Now())
	_, err := p.pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Slug, c.CreatedAt,
	)
	if err != nil {
		return pgError(err)
	}
	return nil
}

func (p *Postgres) ArticleBySlug(ctx context.Context, slug string) (Article, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+pgArticleColumns+` FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return Article{}, errors.Join(ErrQuery, err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanArticle)
	if errors.Is(err, pgx.ErrNoRows) {
		return Article{}, ErrNotFound
	}
	if err != nil {
		return Article{}, errors.Join(ErrQuery, err)
	}

	out := []Article{a}
	if err := p.attachCategories(ctx, out); err != nil {
		return Article{}, err
	}
	return out[0], nil
}

func (p *Postgres) CategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var c Category
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, slug, created_at FROM categories WHERE slug = $1`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, errors.Join(ErrQuery, err)
	}
	return c, nil
}

func (p *Postgres) ListArticles(ctx context.Context, lp ListParams) ([]Article, error) {
	var (
		where []string
		args  []any
	)
	if lp.Status != "" {
		args = append(args, string(lp.Status))
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if lp.CategoryID != uuid.Nil {
		args = append(args, lp.CategoryID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id AND ac.category_id = $%d)", len(args)))
	}

	q := `SELECT ` + prefixed("a.", pgArticleColumns) + ` FROM articles a`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, lp.limit())
	q += fmt.Sprintf(" ORDER BY a.created_at DESC, a.slug ASC LIMIT $%d", len(args))

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	out, err := pgx.CollectRows(rows, scanArticle)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	if len(out) == 0 {
		return []Article{}, nil
	}
	if err := p.attachCategories(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Postgres) EnsureDefaultCategory(ctx context.Context, name, slug string) (Category, error) {
	c := Category{Name: name, Slug: slug}
	prepareCategory(&c, time.Now())

	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (slug) DO NOTHING`,
			c.ID, c.Name, c.Slug, c.CreatedAt,
		); err != nil {
			return pgError(err)
		}
		return tx.QueryRow(ctx,
			`SELECT id, name, slug, created_at FROM categories WHERE slug = $1`, slug,
		).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	})
	if err != nil {
		return Category{}, errors.Join(ErrQuery, err)
	}
	return c, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return db.Healthcheck(p.pool)(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) attachCategories(ctx context.Context, articles []Article) error {
	ids := make([]uuid.UUID, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	rows, err := p.pool.Query(ctx,
		`SELECT article_id, category_id FROM article_categories WHERE article_id = ANY($1) ORDER BY category_id`, ids)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	byArticle := make(map[uuid.UUID][]uuid.UUID, len(articles))
	var aid, cid uuid.UUID
	if _, err := pgx.ForEachRow(rows, []any{&aid, &cid}, func() error {
		byArticle[aid] = append(byArticle[aid], cid)
		return nil
	}); err != nil {
		return errors.Join(ErrQuery, err)
	}

	for i := range articles {
		articles[i].CategoryIDs = byArticle[articles[i].ID]
		if articles[i].CategoryIDs == nil {
			articles[i].CategoryIDs = []uuid.UUID{}
		}
	}
	return nil
}

func scanArticle(row pgx.CollectableRow) (Article, error) {
	var (
		a      Article
		status string
	)
	err := row.Scan(&a.ID, &a.Title, &a.Slug, &a.Body, &a.Format, &a.HTML, &a.Excerpt,
		&status, &a.IsFeatured, &a.PublishAt, &a.CreatedAt)
	a.Status = Status(status)
	return a, err
}

func pgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(ErrDuplicateSlug, err)
		case pgForeignKeyViolation:
			return errors.Join(ErrNotFound, err)
		}
	}
	return errors.Join(ErrQuery, err)
}

var _ Store = (*Postgres)(nil)
