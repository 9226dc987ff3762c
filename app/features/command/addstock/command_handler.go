package addstock

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	AddStock(ctx context.Context, id int64, amount int, entry circulation.JournalEntry) (circulation.StockChange, error)
}

// CommandHandler adds stock. The increment is a single conditional-free update, so it never conflicts
// and is not retried.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle returns the updated quantities together with the increment.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.StockChange, shell.HandlerResult, error) {
	change, err := h.executeCommand(ctx, command)

	return change, shell.SingleAttemptResult(err), err
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (circulation.StockChange, error) {
	result := Decide(command)
	if result.IsRejected() {
		return circulation.StockChange{}, result.HasError()
	}

	entry, err := shell.JournalEntryFrom(result.Event, shell.NewJournalMetadata())
	if err != nil {
		return circulation.StockChange{}, err
	}

	return h.store.AddStock(ctx, command.MaterialID, command.Amount, entry)
}
