package registermaterial

import (
	"context"
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	CreateMaterial(
		ctx context.Context,
		title string,
		typeID int64,
		initialQuantity int,
		registeredAt time.Time,
	) (circulation.MaterialSummary, error)
}

// CommandHandler registers materials.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle registers the material with registered and current quantity set to the initial quantity.
// An unknown type yields circulation.ErrInvalidReference.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.MaterialSummary, shell.HandlerResult, error) {
	if err := core.ValidateNewMaterial(command.Title, command.InitialQuantity); err != nil {
		return circulation.MaterialSummary{}, shell.SingleAttemptResult(err), err
	}

	material, err := h.store.CreateMaterial(ctx, command.Title, command.TypeID, command.InitialQuantity, command.OccurredAt)

	return material, shell.SingleAttemptResult(err), err
}
