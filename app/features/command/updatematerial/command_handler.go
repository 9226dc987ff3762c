package updatematerial

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	LoadMaterial(ctx context.Context, id int64) (circulation.Material, bool, error)
	UpdateMaterial(ctx context.Context, current, changed circulation.Material) (circulation.MaterialSummary, error)
}

// CommandHandler runs Load -> Decide -> version-conditional update, retried on concurrency conflicts.
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

// Handle applies the edit and returns the updated material.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.MaterialSummary, shell.HandlerResult, error) {
	var material circulation.MaterialSummary

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		updated, execErr := h.executeCommand(retryCtx, command)
		material = updated

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return circulation.MaterialSummary{}, shell.NewHandlerResult(retryMetrics), err
	}

	return material, shell.NewHandlerResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (circulation.MaterialSummary, error) {
	stored, found, err := h.store.LoadMaterial(ctx, command.MaterialID)
	if err != nil {
		return circulation.MaterialSummary{}, err
	}

	changed, err := Decide(stored, found, command)
	if err != nil {
		return circulation.MaterialSummary{}, err
	}

	return h.store.UpdateMaterial(ctx, stored, changed)
}
