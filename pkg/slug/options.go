package slug

import "github.com/dmitrymomot/blogkit/pkg/translit"

// DefaultMaxAttempts bounds the uniqueness loop.
const DefaultMaxAttempts = 100

// Mode controls how much normalization sanitization applies.
type Mode int

const (
	// ModeSave transliterates accents and maps typographic punctuation.
	// It is the mode used for stored slugs.
	ModeSave Mode = iota
	// ModeDisplay only lower-cases and strips disallowed characters.
	ModeDisplay
)

// Option configures slug generation.
type Option func(*options)

type options struct {
	locale      translit.LocaleProvider
	mode        Mode
	maxLength   int
	maxAttempts int
}

func defaultOptions() *options {
	return &options{
		locale:      translit.Fixed(""),
		mode:        ModeSave,
		maxAttempts: DefaultMaxAttempts,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLocale sets the locale used for transliteration, e.g. "de_DE".
func WithLocale(locale string) Option {
	return func(o *options) {
		o.locale = translit.Fixed(locale)
	}
}

// WithLocaleProvider reads the locale from p on every call.
func WithLocaleProvider(p translit.LocaleProvider) Option {
	return func(o *options) {
		if p != nil {
			o.locale = p
		}
	}
}

// WithMode sets the sanitization mode. Default: ModeSave.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// MaxLength limits the slug length in runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxLength = n
		}
	}
}

// MaxAttempts sets how many candidates Unique and Reserve try.
// Values below one are ignored.
func MaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}
