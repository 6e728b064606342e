package render

import theme "github.com/goliatone/go-theme"

// Options describe per-request data that renderers can use to customise their
// output without touching the parsing pipeline.
type Options struct {
	// Values pre-populates rendered widgets keyed by dotted field path (e.g.
	// "person.age"), overriding schema defaults.
	Values map[string]any

	// SubmitButton gates output generation behind an explicit submit instead
	// of recomputing on every input change.
	SubmitButton bool

	// ExponentialFloats formats all float input fields in scientific
	// notation.
	ExponentialFloats bool

	// Testing marks the generated app for smoke-test runs so it can skip
	// blocking calls against a live Tesseract.
	Testing bool

	// Theme carries a resolved go-theme selection (tokens, variant) that
	// renderers may fold into their output.
	Theme *theme.RendererConfig
}

// Option mutates Options during construction.
type Option func(*Options)

// NewOptions applies Option functions over the defaults: submit button on,
// plain float formatting.
func NewOptions(options ...Option) Options {
	cfg := Options{SubmitButton: true}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// WithValues pre-populates widget values keyed by dotted field path.
func WithValues(values map[string]any) Option {
	return func(opts *Options) {
		opts.Values = values
	}
}

// WithoutSubmitButton regenerates outputs on every input change.
func WithoutSubmitButton() Option {
	return func(opts *Options) {
		opts.SubmitButton = false
	}
}

// WithExponentialFloats formats float inputs in scientific notation.
func WithExponentialFloats() Option {
	return func(opts *Options) {
		opts.ExponentialFloats = true
	}
}

// WithTesting marks the output for smoke-test runs.
func WithTesting() Option {
	return func(opts *Options) {
		opts.Testing = true
	}
}

// WithTheme injects a resolved theme configuration.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(opts *Options) {
		opts.Theme = cfg
	}
}
