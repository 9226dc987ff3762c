package observable

import (
	"context"
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
)

// CommandWrapper instruments a core command handler with metrics, tracing and logging.
type CommandWrapper[C shell.Command, R any] struct {
	coreHandler      shell.CoreCommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper creates an observable wrapper around coreHandler.
// The command type is taken from the zero value of C.
func NewCommandWrapper[C shell.Command, R any](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...Option,
) (*CommandWrapper[C, R], error) {

	var zeroCommand C

	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &CommandWrapper[C, R]{
		coreHandler:      coreHandler,
		commandType:      zeroCommand.CommandType(),
		metricsCollector: o.metricsCollector,
		tracingCollector: o.tracingCollector,
		contextualLogger: o.contextualLogger,
		logger:           o.logger,
	}, nil
}

// Handle delegates to the core handler and records the outcome.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, shell.HandlerResult, error) {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, handlerResult, err := w.coreHandler.Handle(ctx, command)

	duration := time.Since(start)
	status := shell.StatusOf(err)

	shell.RecordRetryMetrics(ctx, w.metricsCollector, w.commandType, handlerResult)
	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)
	shell.LogCommandOutcome(ctx, w.logger, w.contextualLogger, w.commandType, status, duration, handlerResult, err)

	return result, handlerResult, err
}
