package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dmitrymomot/blogkit/pkg/db"
)

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db  *sqlx.DB
	log *slog.Logger
}

type sqliteArticle struct {
	ID         string        `db:"id"`
	Title      string        `db:"title"`
	Slug       string        `db:"slug"`
	Body       string        `db:"body"`
	Format     string        `db:"format"`
	HTML       string        `db:"html"`
	Excerpt    string        `db:"excerpt"`
	Status     string        `db:"status"`
	IsFeatured bool          `db:"is_featured"`
	PublishAt  sql.NullInt64 `db:"publish_at"`
	CreatedAt  int64         `db:"created_at"`
}

type sqliteCategory struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	CreatedAt int64  `db:"created_at"`
}

type sqliteLink struct {
	ArticleID  string `db:"article_id"`
	CategoryID string `db:"category_id"`
}

const sqliteArticleColumns = `id, title, slug, body, format, html, excerpt, status, is_featured, publish_at, created_at`

// OpenSQLite opens the database at dsn (":memory:" when empty) with
// foreign keys enforced. Writes are serialized over a single connection.
func OpenSQLite(ctx context.Context, dsn string, log *slog.Logger) (*SQLite, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if dsn == "" {
		dsn = ":memory:"
	}
	if !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	dbx, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	// one connection keeps :memory: databases alive and avoids SQLITE_BUSY
	dbx.SetMaxOpenConns(1)

	if err := dbx.PingContext(ctx); err != nil {
		_ = dbx.Close()
		return nil, errors.Join(ErrQuery, err)
	}
	log.DebugContext(ctx, "sqlite store opened")
	return &SQLite{db: dbx, log: log}, nil
}

func (s *SQLite) Migrate(ctx context.Context) error {
	if err := db.MigrateSQL(ctx, s.db.DB, "sqlite3", migrations, "migrations/sqlite", "schema_migrations", s.log); err != nil {
		return errors.Join(ErrMigrate, err)
	}
	return nil
}

func (s *SQLite) ArticleSlugExists(ctx context.Context, slug string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = ?)`, slug)
}

func (s *SQLite) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = ?)`, slug)
}

func (s *SQLite) exists(ctx context.Context, query, slug string) (bool, error) {
	var ok bool
	if err := s.db.GetContext(ctx, &ok, query, slug); err != nil {
		return false, errors.Join(ErrQuery, err)
	}
	return ok, nil
}

func (s *SQLite) CreateArticle(ctx context.Context, a *Article) error {
	if err := prepareArticle(a, time.Now()); err != nil {
		return err
	}
	row := toSQLiteArticle(*a)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `INSERT INTO articles (`+sqliteArticleColumns+`)
		VALUES (:id, :title, :slug, :body, :format, :html, :excerpt, :status, :is_featured, :publish_at, :created_at)`, row); err != nil {
		return sqliteError(err)
	}
	for _, cid := range a.CategoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO article_categories (category_id, article_id) VALUES (?, ?)`,
			cid.String(), row.ID,
		); err != nil {
			return sqliteError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

func (s *SQLite) CreateCategory(ctx context.Context, c *Category) error {
	prepareCategory(c, time.Now())
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO categories (id, name, slug, created_at) VALUES (:id, :name, :slug, :created_at)`,
		sqliteCategory{ID: c.ID.String(), Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt.UnixMicro()},
	)
	if err != nil {
		return sqliteError(err)
	}
	return nil
}

func (s *SQLite) ArticleBySlug(ctx context.Context, slug string) (Article, error) {
	var row sqliteArticle
	err := s.db.GetContext(ctx, &row, `SELECT `+sqliteArticleColumns+` FROM articles WHERE slug = ?`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, ErrNotFound
	}
	if err != nil {
		return Article{}, errors.Join(ErrQuery, err)
	}

	out, err := s.withCategories(ctx, []sqliteArticle{row})
	if err != nil {
		return Article{}, err
	}
	return out[0], nil
}

func (s *SQLite) CategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var row sqliteCategory
	err := s.db.GetContext(ctx, &row, `SELECT id, name, slug, created_at FROM categories WHERE slug = ?`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, errors.Join(ErrQuery, err)
	}
	return row.toCategory(), nil
}

func (s *SQLite) ListArticles(ctx context.Context, p ListParams) ([]Article, error) {
	var (
		where []string
		args  []any
	)
	if p.Status != "" {
		where = append(where, "a.status = ?")
		args = append(args, string(p.Status))
	}
	if p.CategoryID != uuid.Nil {
		where = append(where, "EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id AND ac.category_id = ?)")
		args = append(args, p.CategoryID.String())
	}

	q := `SELECT ` + prefixed("a.", sqliteArticleColumns) + ` FROM articles a`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY a.created_at DESC, a.slug ASC LIMIT ?"
	args = append(args, p.limit())

	var rows []sqliteArticle
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	if len(rows) == 0 {
		return []Article{}, nil
	}
	return s.withCategories(ctx, rows)
}

func (s *SQLite) EnsureDefaultCategory(ctx context.Context, name, slug string) (Category, error) {
	c := Category{Name: name, Slug: slug}
	prepareCategory(&c, time.Now())

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug, created_at) VALUES (?, ?, ?, ?) ON CONFLICT (slug) DO NOTHING`,
		c.ID.String(), c.Name, c.Slug, c.CreatedAt.UnixMicro(),
	); err != nil {
		return Category{}, sqliteError(err)
	}
	return s.CategoryBySlug(ctx, slug)
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// withCategories converts rows and attaches their category links.
func (s *SQLite) withCategories(ctx context.Context, rows []sqliteArticle) ([]Article, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	q, args, err := sqlx.In(`SELECT article_id, category_id FROM article_categories WHERE article_id IN (?) ORDER BY category_id`, ids)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	var links []sqliteLink
	if err := s.db.SelectContext(ctx, &links, s.db.Rebind(q), args...); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	byArticle := make(map[string][]uuid.UUID, len(rows))
	for _, l := range links {
		if id, err := uuid.Parse(l.CategoryID); err == nil {
			byArticle[l.ArticleID] = append(byArticle[l.ArticleID], id)
		}
	}

	out := make([]Article, len(rows))
	for i, r := range rows {
		out[i] = r.toArticle()
		out[i].CategoryIDs = byArticle[r.ID]
		if out[i].CategoryIDs == nil {
			out[i].CategoryIDs = []uuid.UUID{}
		}
	}
	return out, nil
}

func toSQLiteArticle(a Article) sqliteArticle {
	row := sqliteArticle{
		ID:         a.ID.String(),
		Title:      a.Title,
		Slug:       a.Slug,
		Body:       a.Body,
		Format:     a.Format,
		HTML:       a.HTML,
		Excerpt:    a.Excerpt,
		Status:     string(a.Status),
		IsFeatured: a.IsFeatured,
		CreatedAt:  a.CreatedAt.UnixMicro(),
	}
	if a.PublishAt != nil {
		row.PublishAt = sql.NullInt64{Int64: a.PublishAt.UnixMicro(), Valid: true}
	}
	return row
}

func (r sqliteArticle) toArticle() Article {
	a := Article{
		ID:         uuid.MustParse(r.ID),
		Title:      r.Title,
		Slug:       r.Slug,
		Body:       r.Body,
		Format:     r.Format,
		HTML:       r.HTML,
		Excerpt:    r.Excerpt,
		Status:     Status(r.Status),
		IsFeatured: r.IsFeatured,
		CreatedAt:  time.UnixMicro(r.CreatedAt).UTC(),
	}
	if r.PublishAt.Valid {
		t := time.UnixMicro(r.PublishAt.Int64).UTC()
		a.PublishAt = &t
	}
	return a
}

func (r sqliteCategory) toCategory() Category {
	return Category{
		ID:        uuid.MustParse(r.ID),
		Name:      r.Name,
		Slug:      r.Slug,
		CreatedAt: time.UnixMicro(r.CreatedAt).UTC(),
	}
}

func sqliteError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(ErrDuplicateSlug, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return errors.Join(ErrNotFound, err)
		}
	}
	// primary result code only, when extended codes are off
	switch msg := err.Error(); {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return errors.Join(ErrDuplicateSlug, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Join(ErrNotFound, err)
	}
	return errors.Join(ErrQuery, err)
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, ", ")
}

var _ Store = (*SQLite)(nil)
