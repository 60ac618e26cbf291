package pipeline

import "log/slog"

type config struct {
	name   string
	logger *slog.Logger
}

// Option configures a Producer, a Consumer or a whole Run.
type Option func(*config)

func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func applyOptions(name string, opts ...Option) config {
	c := config{
		name:   name,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
