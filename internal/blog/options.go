package blog

import "log/slog"

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDefaultCategory sets the category attached to articles created
// without one. Default: Uncategorized / uncategorized.
func WithDefaultCategory(name, slug string) Option {
	return func(s *Service) {
		if name != "" && slug != "" {
			s.defaultName, s.defaultSlug = name, slug
		}
	}
}

// WithLocale sets the transliteration locale used when a request has none.
func WithLocale(locale string) Option {
	return func(s *Service) {
		s.locale = locale
	}
}

// WithMaxSlugAttempts bounds the slug uniqueness loop. Default: 100.
func WithMaxSlugAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithMaxSlugLength caps generated slugs in runes. Zero means no limit.
func WithMaxSlugLength(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxLength = n
		}
	}
}
