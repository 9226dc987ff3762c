package observable

import (
	"context"
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
)

// QueryWrapper instruments a core query handler with metrics, tracing and logging.
type QueryWrapper[Q shell.Query, R any] struct {
	coreHandler      shell.CoreQueryHandler[Q, R]
	queryType        string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewQueryWrapper creates an observable wrapper around coreHandler.
// The query type is taken from the zero value of Q.
func NewQueryWrapper[Q shell.Query, R any](
	coreHandler shell.CoreQueryHandler[Q, R],
	opts ...Option,
) (*QueryWrapper[Q, R], error) {

	var zeroQuery Q

	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &QueryWrapper[Q, R]{
		coreHandler:      coreHandler,
		queryType:        zeroQuery.QueryType(),
		metricsCollector: o.metricsCollector,
		tracingCollector: o.tracingCollector,
		contextualLogger: o.contextualLogger,
		logger:           o.logger,
	}, nil
}

// Handle delegates to the core handler and records the outcome.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	start := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, w.tracingCollector, w.queryType)
	shell.LogQueryStart(ctx, w.logger, w.contextualLogger, w.queryType)

	result, err := w.coreHandler.Handle(ctx, query)

	duration := time.Since(start)
	status := shell.StatusOf(err)

	shell.RecordQueryMetrics(ctx, w.metricsCollector, w.queryType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)
	shell.LogQueryOutcome(ctx, w.logger, w.contextualLogger, w.queryType, status, duration, err)

	return result, err
}
