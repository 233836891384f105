package kata

import "github.com/ardnew/kata/log"

// Option configures a [Template].
type Option func(*Template)

// WithLogger returns an option that traces compilation and rendering to
// logger. Templates log nothing without it.
func WithLogger(logger log.Logger) Option {
	return func(t *Template) {
		t.logger = logger
	}
}

func applyOptions(t *Template, opts ...Option) {
	for _, opt := range opts {
		opt(t)
	}
}
