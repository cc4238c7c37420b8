package chaintable

import "go.uber.org/zap"

// Option tweaks a table at creation time.
type Option func(*Table)

// WithSeed makes the table hash under an explicit seed instead of the
// process-wide one from hashseed. Tests use this to get deterministic bucket
// placement without touching global state.
func WithSeed(seed uint32) Option {
	return func(t *Table) {
		t.seed = seed
	}
}

// WithLogger attaches a structured logger for lifecycle events (creation,
// growth, destruction). The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}
