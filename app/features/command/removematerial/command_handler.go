package removematerial

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	DeleteMaterial(ctx context.Context, id int64) error
}

// CommandHandler removes materials. The open-loan guard and the delete run in one transaction
// of the store. A checkout racing the delete surfaces as a conflict and the removal is retried.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle deletes the material. It fails with circulation.ErrHasOpenLoans or circulation.ErrNotFound.
func (h CommandHandler) Handle(ctx context.Context, command Command) (struct{}, shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.DeleteMaterial(retryCtx, command.MaterialID)
	}, h.retryOptions...)

	return struct{}{}, shell.NewHandlerResult(retryMetrics), err
}
