package app

import "log/slog"

type config struct {
	log *slog.Logger
}

// Option tunes the facade without widening its constructor.
type Option func(*config)

// WithLogger attaches a logger to the facade.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *config) {
		cfg.log = log
	}
}

func applyOptions(opts []Option) config {
	cfg := config{log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
