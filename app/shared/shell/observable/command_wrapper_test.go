package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/observable"
	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/testdoubles" //nolint:revive
)

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expected := shell.HandlerResult{RetryAttempts: 1, LastErrorType: "none"}
	handler := newMockCommandHandler("loan-42", expected, nil)
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithMetrics(metricsCollector),
		observable.WithTracing(tracingCollector),
		observable.WithContextualLogging(contextualLogger),
	)
	require.NoError(t, err)

	// act
	result, handlerResult, err := wrapper.Handle(context.Background(), mockCommand{ID: 7})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "loan-42", result)
	assert.Equal(t, expected, handlerResult)
	assert.Equal(t, []mockCommand{{ID: 7}}, handler.calls)

	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.False(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).Assert())

	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusSuccess))

	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_Rejected(t *testing.T) {
	// arrange
	handler := newMockCommandHandler("", shell.HandlerResult{RetryAttempts: 1, LastErrorType: "rejected"}, circulation.ErrQuotaExceeded)
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithMetrics(metricsCollector),
		observable.WithTracing(tracingCollector),
		observable.WithContextualLogging(contextualLogger),
	)
	require.NoError(t, err)

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, circulation.ErrQuotaExceeded)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).
		WithStatus(shell.StatusRejected).
		Assert())
	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusRejected))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandRejected))
	assert.False(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_Handle_RetriesExhausted(t *testing.T) {
	// arrange
	handlerResult := shell.HandlerResult{
		RetryAttempts:    6,
		TotalRetryDelay:  310 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}
	handler := newMockCommandHandler("", handlerResult, circulation.ErrConcurrencyConflict)
	metricsCollector := NewMetricsCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithMetrics(metricsCollector),
		observable.WithContextualLogging(contextualLogger),
	)
	require.NoError(t, err)

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel(shell.LogAttrAttemptNumber, "5").
		WithErrorType("concurrency_conflict").
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerConcurrencyConflictMetric).
		WithStatus(shell.StatusConcurrencyConflict).
		Assert())
	assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_Handle_PlainLoggerWhenNoContextualLogger(t *testing.T) {
	// arrange
	handler := newMockCommandHandler("", shell.HandlerResult{RetryAttempts: 1}, errors.Join(circulation.ErrQueryingFailed, errors.New("boom")))
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithLogging(slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, circulation.ErrQueryingFailed)
	assert.True(t, logHandler.HasLog(slog.LevelInfo, shell.LogMsgCommandStarted))
	assert.True(t, logHandler.HasLog(slog.LevelError, shell.LogMsgCommandFailed))
}

func Test_NewCommandWrapper_RejectsNilCollaborators(t *testing.T) {
	handler := newMockCommandHandler("", shell.HandlerResult{}, nil)

	_, err := observable.NewCommandWrapper[mockCommand, string](handler, observable.WithMetrics(nil))
	assert.ErrorIs(t, err, observable.ErrNilMetricsCollector)

	_, err = observable.NewCommandWrapper[mockCommand, string](handler, observable.WithTracing(nil))
	assert.ErrorIs(t, err, observable.ErrNilTracingCollector)

	_, err = observable.NewCommandWrapper[mockCommand, string](handler, observable.WithContextualLogging(nil))
	assert.ErrorIs(t, err, observable.ErrNilLogger)
}

type mockCommand struct {
	ID int64
}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockCommandHandler struct {
	result        string
	handlerResult shell.HandlerResult
	err           error
	calls         []mockCommand
}

func newMockCommandHandler(result string, handlerResult shell.HandlerResult, err error) *mockCommandHandler {
	return &mockCommandHandler{result: result, handlerResult: handlerResult, err: err}
}

func (h *mockCommandHandler) Handle(_ context.Context, command mockCommand) (string, shell.HandlerResult, error) {
	h.calls = append(h.calls, command)

	return h.result, h.handlerResult, h.err
}
