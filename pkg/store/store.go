package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/blogkit/pkg/db"
)

//go:embed migrations
var migrations embed.FS

// Store is the persistence contract shared by all backends.
type Store interface {
	ArticleSlugExists(ctx context.Context, slug string) (bool, error)
	CategorySlugExists(ctx context.Context, slug string) (bool, error)

	// CreateArticle inserts a and its category links. It fills ID, Status
	// and CreatedAt when empty and returns ErrDuplicateSlug when the slug
	// is taken.
	CreateArticle(ctx context.Context, a *Article) error
	CreateCategory(ctx context.Context, c *Category) error

	ArticleBySlug(ctx context.Context, slug string) (Article, error)
	CategoryBySlug(ctx context.Context, slug string) (Category, error)
	ListArticles(ctx context.Context, p ListParams) ([]Article, error)

	// EnsureDefaultCategory returns the category with slug, creating it
	// with name when missing.
	EnsureDefaultCategory(ctx context.Context, name, slug string) (Category, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	// memory, sqlite or postgres.
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`

	// Postgres pool settings. Pool.DSN is ignored in favor of DSN.
	Pool db.Config `mapstructure:"pool"`
}

// Open connects to the backend named by cfg.Driver. It does not migrate.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.DSN, log)
	case "postgres":
		pc := cfg.Pool
		pc.DSN = cfg.DSN
		return OpenPostgres(ctx, pc, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
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
