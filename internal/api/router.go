package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/blogkit/internal/blog"
	"github.com/dmitrymomot/blogkit/pkg/i18n"
	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/translit"
)

// Option configures the router.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	checks         map[string]CheckFunc
	locale         string
	requestTimeout time.Duration
	maxBodyBytes   int64
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCheck registers a readiness check served on /readyz.
func WithCheck(name string, fn CheckFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.checks[name] = fn
		}
	}
}

// WithDefaultLocale is used when neither the request body nor
// Accept-Language names a supported locale.
func WithDefaultLocale(locale string) Option {
	return func(o *options) {
		o.locale = locale
	}
}

// WithRequestTimeout bounds handler run time. Default: 30s.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithMaxBodyBytes caps request bodies. Default: 1 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

type handlers struct {
	blog     *blog.Service
	renderer *render.Renderer
	log      *slog.Logger
}

// NewRouter builds the JSON API:
//
//	POST /v1/autop, /v1/filter, /v1/esc-url, /v1/accents, /v1/slug, /v1/render
//	POST /v1/articles, GET /v1/articles, GET /v1/articles/{slug}
//	POST /v1/categories, GET /v1/categories/{slug}
//	GET  /healthz, /readyz
func NewRouter(svc *blog.Service, renderer *render.Renderer, opts ...Option) http.Handler {
	o := &options{
		logger:         slog.New(slog.DiscardHandler),
		checks:         map[string]CheckFunc{},
		requestTimeout: 30 * time.Second,
		maxBodyBytes:   1 << 20,
	}
	for _, opt := range opts {
		opt(o)
	}

	h := &handlers{blog: svc, renderer: renderer, log: o.logger}
	matcher := i18n.NewMatcher(translit.SupportedLocales()...)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recover(o.logger))
	r.Use(middleware.RealIP)

	r.Get("/healthz", livenessHandler())
	r.Get("/readyz", readinessHandler(o.checks, defaultHealthTimeout, o.logger))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(o.requestTimeout))
		r.Use(middleware.RequestSize(o.maxBodyBytes))
		r.Use(Locale(matcher, o.locale))

		r.Post("/autop", h.autop)
		r.Post("/filter", h.filter)
		r.Post("/esc-url", h.escURL)
		r.Post("/accents", h.accents)
		r.Post("/slug", h.slug)
		r.Post("/render", h.render)

		r.Route("/articles", func(r chi.Router) {
			r.Post("/", h.createArticle)
			r.Get("/", h.listArticles)
			r.Get("/{slug}", h.getArticle)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.createCategory)
			r.Get("/{slug}", h.getCategory)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, h.log, ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, h.log, NewHTTPError(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), nil))
	})

	return r
}
