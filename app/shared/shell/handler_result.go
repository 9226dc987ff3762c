package shell

import "time"

// HandlerResult carries the execution metadata of a command handler, so the handler stays
// independent of any observability implementation.
type HandlerResult struct {
	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the time spent waiting in backoff, not executing.
	TotalRetryDelay time.Duration

	// LastErrorType is the error type of the last attempt, "none" on success.
	LastErrorType string

	// RetriesExhausted is true when every attempt failed with a retryable error.
	RetriesExhausted bool
}

// NewHandlerResult creates a HandlerResult from the metadata of a retried execution.
func NewHandlerResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// SingleAttemptResult is the HandlerResult of a handler that does not retry.
func SingleAttemptResult(err error) HandlerResult {
	return HandlerResult{
		RetryAttempts: 1,
		LastErrorType: errorType(err),
	}
}
