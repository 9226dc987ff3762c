package savematerialtype

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	CreateMaterialType(ctx context.Context, name string) (circulation.MaterialType, error)
	UpdateMaterialType(ctx context.Context, id int64, name string) (circulation.MaterialType, error)
}

// CommandHandler saves material types.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle creates or renames the material type.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.MaterialType, shell.HandlerResult, error) {
	if err := core.ValidateMaterialType(command.Name); err != nil {
		return circulation.MaterialType{}, shell.SingleAttemptResult(err), err
	}

	var mt circulation.MaterialType
	var err error

	if command.TypeID == 0 {
		mt, err = h.store.CreateMaterialType(ctx, command.Name)
	} else {
		mt, err = h.store.UpdateMaterialType(ctx, command.TypeID, command.Name)
	}

	return mt, shell.SingleAttemptResult(err), err
}
