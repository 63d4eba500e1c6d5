package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/blogkit/internal/api"
	"github.com/dmitrymomot/blogkit/internal/blog"
	"github.com/dmitrymomot/blogkit/internal/config"
	"github.com/dmitrymomot/blogkit/pkg/cache"
	"github.com/dmitrymomot/blogkit/pkg/logger"
	"github.com/dmitrymomot/blogkit/pkg/redis"
	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/store"
)

// env is the wired application: config, logger, store, render cache and
// article service.
type env struct {
	cfg      *config.Config
	log      *slog.Logger
	store    store.Store
	cache    cache.Cache[render.Result]
	redis    goredis.UniversalClient
	renderer *render.Renderer
	blog     *blog.Service
}

// openEnv loads config and opens every dependency. The store is migrated
// and the default category created. Callers must call close.
func (a *app) openEnv(ctx context.Context, logOut io.Writer, extractors ...logger.ContextExtractor) (*env, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: newLogger(cfg, logOut, extractors...)}

	e.store, err = store.Open(ctx, cfg.Database, e.log)
	if err != nil {
		return nil, err
	}
	if err := e.store.Migrate(ctx); err != nil {
		e.close(ctx)
		return nil, err
	}

	if err := e.openCache(ctx); err != nil {
		e.close(ctx)
		return nil, err
	}

	e.renderer = render.New(
		render.WithCache(e.cache),
		render.WithCacheTTL(cfg.Cache.TTL),
		render.WithLogger(e.log),
		render.WithExcerptLength(cfg.Content.ExcerptLength),
		render.WithAllowedTags(cfg.Content.ExtraAllowedTags),
	)
	e.blog = blog.New(e.store, e.renderer,
		blog.WithLogger(e.log),
		blog.WithLocale(cfg.Content.Locale),
		blog.WithDefaultCategory(cfg.Content.DefaultCategory.Name, cfg.Content.DefaultCategory.Slug),
		blog.WithMaxSlugAttempts(cfg.Content.MaxSlugAttempts),
		blog.WithMaxSlugLength(cfg.Content.MaxSlugLength),
	)
	if _, err := e.blog.Init(ctx); err != nil {
		e.close(ctx)
		return nil, err
	}
	return e, nil
}

func (e *env) openCache(ctx context.Context) error {
	c := e.cfg.Cache
	switch {
	case !c.Enabled:
		e.cache = cache.Nop[render.Result]{}
	case e.cfg.Redis.URL != "":
		client, err := redis.Open(ctx, e.cfg.Redis.URL, redis.WithLogger(e.log))
		if err != nil {
			return err
		}
		e.redis = client
		e.cache = cache.NewRedis[render.Result](client, cache.JSONCodec[render.Result]{}, "blogkit", c.TTL)
	default:
		e.cache = cache.NewMemory[render.Result](cache.WithDefaultTTL(c.TTL), cache.WithMaxEntries(c.MaxEntries))
	}
	return nil
}

// checks lists readiness probes for the open dependencies.
func (e *env) checks() []api.Option {
	opts := []api.Option{api.WithCheck("store", e.store.Ping)}
	if e.redis != nil {
		opts = append(opts, api.WithCheck("redis", redis.Healthcheck(e.redis)))
	}
	return opts
}

// shutdown closes everything opened by openEnv and joins the errors.
func (e *env) shutdown(context.Context) error {
	var errs []error
	if e.cache != nil {
		errs = append(errs, e.cache.Close())
	}
	if e.redis != nil {
		errs = append(errs, e.redis.Close())
	}
	if e.store != nil {
		errs = append(errs, e.store.Close())
	}
	sentry.Flush(2 * time.Second)
	return errors.Join(errs...)
}

func (e *env) close(ctx context.Context) {
	if err := e.shutdown(ctx); err != nil {
		e.log.ErrorContext(ctx, "shutdown failed", slog.String("error", err.Error()))
	}
}
