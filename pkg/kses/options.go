package kses

// Context selects how EscURL encodes its result.
type Context int

const (
	// Display encodes ampersands and single quotes for HTML output.
	Display Context = iota
	// DB leaves the URL unencoded for storage.
	DB
)

// Option configures EscURL.
type Option func(*options)

type options struct {
	protocols []string
	context   Context
}

func defaultOptions() *options {
	return &options{
		protocols: defaultProtocols,
		context:   Display,
	}
}

// WithProtocols replaces the default protocol allow-list.
// Passing no protocols rejects every URL that carries a scheme.
func WithProtocols(protocols ...string) Option {
	return func(o *options) {
		o.protocols = protocols
	}
}

// WithContext sets the output context. Default: Display.
func WithContext(c Context) Option {
	return func(o *options) {
		o.context = c
	}
}
