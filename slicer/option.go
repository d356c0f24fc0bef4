package slicer

import "log/slog"

// Option represents a slicer option
type Option func(*Slicer)

// WithMaxSteps limits number of visited nodes, a slice exceeding the limit is truncated
func WithMaxSteps(maxSteps int) Option {
	return func(s *Slicer) {
		s.maxSteps = maxSteps
	}
}

// WithLogger sets slicer logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Slicer) {
		if logger != nil {
			s.logger = logger
		}
	}
}
