package checkoutmaterial

import (
	"context"
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	LoadCheckoutState(ctx context.Context, personID, materialID int64) (circulation.CheckoutState, error)
	OpenLoan(
		ctx context.Context,
		state circulation.CheckoutState,
		loanedAt time.Time,
		entry circulation.JournalEntry,
	) (circulation.Loan, error)
}

// CommandHandler runs Load -> Decide -> OpenLoan and retries the cycle on concurrency conflicts.
// Observability is added by wrapping it with observable.CommandWrapper.
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

// Handle opens the loan and returns it. Rejections are returned as domain errors,
// exhausted retries as circulation.ErrConcurrencyConflict.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Loan, shell.HandlerResult, error) {
	var loan circulation.Loan

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		opened, execErr := h.executeCommand(retryCtx, command)
		loan = opened

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return circulation.Loan{}, shell.NewHandlerResult(retryMetrics), err
	}

	return loan, shell.NewHandlerResult(retryMetrics), nil
}

// executeCommand is one attempt of the cycle.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (circulation.Loan, error) {
	state, err := h.store.LoadCheckoutState(ctx, command.PersonID, command.MaterialID)
	if err != nil {
		return circulation.Loan{}, err
	}

	result := Decide(state, command)
	if result.IsRejected() {
		return circulation.Loan{}, result.HasError()
	}

	entry, err := shell.JournalEntryFrom(result.Event, shell.NewJournalMetadata())
	if err != nil {
		return circulation.Loan{}, err
	}

	return h.store.OpenLoan(ctx, state, command.OccurredAt, entry)
}
