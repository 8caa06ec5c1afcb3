package rtree

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures optional RTree behaviour.
type Option func(*options)

// WithLogger configures structured logging of structural changes (splits,
// root growth and collapse, re-insertion after underflow).
// Pass nil to disable logging.
//
// Example:
//
//	tr, _ := rtree.New[int](2, 8, rtree.WithLogger(rtree.NewTextLogger(slog.LevelDebug)))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a collector that is notified after each
// operation. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
