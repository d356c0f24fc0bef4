package flow

import (
	"log/slog"
)

// Option represents a builder option
type Option func(*Builder)

// WithLogger sets builder logger
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSentinel sets the name of the call marking the slicing target, register by default
func WithSentinel(name string) Option {
	return func(b *Builder) {
		if name != "" {
			b.sentinel = name
		}
	}
}
