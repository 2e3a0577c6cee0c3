package snapshot

import "github.com/gridstate/gridstate"

// Option configures a SnapshotList at construction time.
type Option func(*SnapshotList)

// WithLogger attaches a logger. A nil logger is equivalent to omitting the
// option.
func WithLogger(logger *gridstate.Logger) Option {
	return func(sl *SnapshotList) {
		if logger != nil {
			sl.logger = logger
		}
	}
}

// WithMetrics attaches a metrics observer. A nil observer is equivalent to
// omitting the option.
func WithMetrics(observer gridstate.MetricsObserver) Option {
	return func(sl *SnapshotList) {
		if observer != nil {
			sl.metrics = observer
		}
	}
}
