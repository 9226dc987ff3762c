package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

const (
	metricOperationDuration    = "circulationstore_operation_duration_seconds"
	metricRowsReturned         = "circulationstore_rows_returned"
	metricDatabaseErrors       = "circulationstore_database_errors_total"
	metricConcurrencyConflicts = "circulationstore_concurrency_conflicts_total"

	spanNamePrefix = "circulationstore."

	spanAttrOperation  = "operation"
	spanAttrErrorType  = "error_type"
	spanAttrDurationMS = "duration_ms"
	spanAttrRowCount   = "row_count"
	spanAttrRoleID     = "role_id"
	spanAttrTypeID     = "type_id"
	spanAttrPersonID   = "person_id"
	spanAttrMaterialID = "material_id"
	spanAttrLoanID     = "loan_id"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	statusSuccess  = "success"
	statusError    = "error"
	statusRejected = "rejected"
	statusConflict = "conflict"

	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeCanceled            = "canceled"
	errorTypeTimeout             = "timeout"
	errorTypeDatabase            = "database"
	errorTypeDomain              = "domain"
)

// classifyError maps an operation error to a status and an error type label.
// Domain rejections are expected outcomes and are not counted as database errors.
func classifyError(err error) (status, errorType string) {
	switch {
	case errors.Is(err, circulation.ErrConcurrencyConflict):
		return statusConflict, errorTypeConcurrencyConflict
	case circulation.IsDomainError(err):
		return statusRejected, errorTypeDomain
	case errors.Is(err, context.Canceled):
		return statusError, errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return statusError, errorTypeTimeout
	default:
		return statusError, errorTypeDatabase
	}
}

// operationObserver encapsulates span, metrics and log handling for one public Store operation.
type operationObserver struct {
	s         *Store
	ctx       context.Context
	span      circulation.SpanContext
	operation string
	start     time.Time
}

// observe starts a span for operation and returns the span-carrying context with an observer to finish it.
func (s *Store) observe(ctx context.Context, operation string, attrs ...string) (context.Context, *operationObserver) {
	spanAttrs := map[string]string{spanAttrOperation: operation}
	for i := 0; i+1 < len(attrs); i += 2 {
		spanAttrs[attrs[i]] = attrs[i+1]
	}

	spanCtx := ctx
	var span circulation.SpanContext

	if s.tracingCollector != nil {
		spanCtx, span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, spanAttrs)
	}

	return spanCtx, &operationObserver{
		s:         s,
		ctx:       spanCtx,
		span:      span,
		operation: operation,
		start:     time.Now(),
	}
}

// finish records the outcome of the operation. rowCount is ignored when negative.
func (o *operationObserver) finish(err error, rowCount int, logArgs ...any) {
	duration := time.Since(o.start)

	if err == nil {
		o.s.recordDuration(o.ctx, o.operation, statusSuccess, duration)

		attrs := map[string]string{spanAttrDurationMS: formatMilliseconds(duration)}
		if rowCount >= 0 {
			o.s.recordValue(o.ctx, metricRowsReturned, float64(rowCount), o.operation)
			attrs[spanAttrRowCount] = fmt.Sprintf("%d", rowCount)
			logArgs = append(logArgs, logAttrRowCount, rowCount)
		}

		o.s.finishSpan(o.span, statusSuccess, attrs)
		o.s.logOperation(o.ctx, o.operation, append(logArgs, logAttrDurationMS, toMilliseconds(duration))...)

		return
	}

	status, errorType := classifyError(err)
	o.s.recordDuration(o.ctx, o.operation, status, duration)

	switch status {
	case statusConflict:
		o.s.recordConcurrencyConflict(o.ctx, o.operation)
		o.s.logOperation(o.ctx, logMsgConcurrencyConflict, append(logArgs, logAttrOperation, o.operation)...)
	case statusError:
		o.s.recordDatabaseError(o.ctx, o.operation, errorType)
	}

	o.s.finishSpan(o.span, status, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

func (s *Store) finishSpan(span circulation.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && span != nil {
		s.tracingCollector.FinishSpan(span, status, attrs)
	}
}

func (s *Store) recordDuration(ctx context.Context, operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	// Use context-aware method if available
	if contextual, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (s *Store) recordValue(ctx context.Context, metric string, value float64, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusSuccess}

	if contextual, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

func (s *Store) recordDatabaseError(ctx context.Context, operation, errorType string) {
	s.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

func (s *Store) recordConcurrencyConflict(ctx context.Context, operation string) {
	s.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operation,
		labelConflictType: "concurrency",
	})
}

func (s *Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logErrorCtx logs error information at the error level.
func (s *Store) logErrorCtx(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Nanoseconds())/1e6)
}
