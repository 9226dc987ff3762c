package observable

import (
	"errors"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
)

var (
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")
	ErrNilTracingCollector = errors.New("tracing collector must not be nil")
	ErrNilLogger           = errors.New("logger must not be nil")
)

type options struct {
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option configures the observability of a CommandWrapper or QueryWrapper.
type Option func(*options) error

// WithMetrics sets the metrics collector.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(o *options) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		o.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector shell.TracingCollector) Option {
	return func(o *options) error {
		if collector == nil {
			return ErrNilTracingCollector
		}

		o.tracingCollector = collector

		return nil
	}
}

// WithContextualLogging sets the contextual logger. It takes precedence over the plain logger.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(o *options) error {
		if logger == nil {
			return ErrNilLogger
		}

		o.contextualLogger = logger

		return nil
	}
}

// WithLogging sets the plain logger.
func WithLogging(logger shell.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return ErrNilLogger
		}

		o.logger = logger

		return nil
	}
}

func applyOptions(opts []Option) (options, error) {
	var o options

	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}

	return o, nil
}
