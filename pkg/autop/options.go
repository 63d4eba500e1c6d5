package autop

// Option configures Autop.
type Option func(*options)

type options struct {
	breaks bool
}

func defaultOptions() *options {
	return &options{breaks: true}
}

// WithBreaks controls whether remaining single newlines are converted
// into <br /> tags. Default: true.
func WithBreaks(enabled bool) Option {
	return func(o *options) {
		o.breaks = enabled
	}
}

// WithoutBreaks is shorthand for WithBreaks(false).
func WithoutBreaks() Option {
	return WithBreaks(false)
}
