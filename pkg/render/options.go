package render

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/blogkit/pkg/cache"
	"github.com/dmitrymomot/blogkit/pkg/sanitizer"
)

// Option configures a Renderer.
type Option func(*options)

type options struct {
	cache         cache.Cache[Result]
	cacheTTL      time.Duration
	logger        *slog.Logger
	excerptLength int
	allowedTags   string
}

func defaultOptions() *options {
	return &options{
		cache:         cache.Nop[Result]{},
		cacheTTL:      time.Hour,
		logger:        slog.New(slog.DiscardHandler),
		excerptLength: sanitizer.DefaultExcerptLength,
	}
}

// WithCache stores results in c. Default: no caching.
func WithCache(c cache.Cache[Result]) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithCacheTTL sets how long results stay cached. Default: 1 hour.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithExcerptLength sets the excerpt size in runes. Default: 250.
func WithExcerptLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.excerptLength = n
		}
	}
}

// WithAllowedTags adds tags (e.g. "<p><h2>") kept by the HTML filter on
// top of sanitizer.DefaultAllowedTags.
func WithAllowedTags(tags string) Option {
	return func(o *options) {
		o.allowedTags = tags
	}
}
