package returnloan

import (
	"context"
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	LoadReturnState(ctx context.Context, loanID int64) (circulation.ReturnState, error)
	CloseLoan(
		ctx context.Context,
		open circulation.Loan,
		returnedAt time.Time,
		entry circulation.JournalEntry,
	) (circulation.Loan, error)
}

// CommandHandler runs Load -> Decide -> CloseLoan and retries the cycle on concurrency conflicts.
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

// Handle closes the loan and returns it with Returned set.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Loan, shell.HandlerResult, error) {
	var loan circulation.Loan

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		closed, execErr := h.executeCommand(retryCtx, command)
		loan = closed

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return circulation.Loan{}, shell.NewHandlerResult(retryMetrics), err
	}

	return loan, shell.NewHandlerResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (circulation.Loan, error) {
	state, err := h.store.LoadReturnState(ctx, command.LoanID)
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

	return h.store.CloseLoan(ctx, state.Loan, command.OccurredAt, entry)
}
