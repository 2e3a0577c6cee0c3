package store

import "github.com/gridstate/gridstate"

// Option configures an AttributeStore at construction time.
type Option func(*AttributeStore)

// WithInitialCapacity pre-sizes the store to at least n cells (rounded up
// to a multiple of 64 by Setup) instead of the default of 64.
func WithInitialCapacity(n int) Option {
	return func(s *AttributeStore) {
		s.initialCapacity = n
	}
}

// WithGrowthFactor overrides the default 2x geometric growth factor used
// when AddNodes exhausts the free-slot bitset. factor must be > 1;
// otherwise the option is ignored.
func WithGrowthFactor(factor float64) Option {
	return func(s *AttributeStore) {
		if factor > 1 {
			s.growthFactor = factor
		}
	}
}

// WithLogger attaches a logger. A nil logger is equivalent to omitting the
// option.
func WithLogger(logger *gridstate.Logger) Option {
	return func(s *AttributeStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics attaches a metrics observer. A nil observer is equivalent to
// omitting the option.
func WithMetrics(observer gridstate.MetricsObserver) Option {
	return func(s *AttributeStore) {
		if observer != nil {
			s.metrics = observer
		}
	}
}
