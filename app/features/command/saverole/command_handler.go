package saverole

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	CreateRole(ctx context.Context, name string, capacity int) (circulation.Role, error)
	UpdateRole(ctx context.Context, id int64, name string, capacity int) (circulation.Role, error)
}

// CommandHandler saves roles.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle creates or updates the role.
// Lowering the capacity below the open loans of a member is accepted, it only blocks further checkouts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Role, shell.HandlerResult, error) {
	if err := core.ValidateRole(command.Name, command.Capacity); err != nil {
		return circulation.Role{}, shell.SingleAttemptResult(err), err
	}

	var role circulation.Role
	var err error

	if command.RoleID == 0 {
		role, err = h.store.CreateRole(ctx, command.Name, command.Capacity)
	} else {
		role, err = h.store.UpdateRole(ctx, command.RoleID, command.Name, command.Capacity)
	}

	return role, shell.SingleAttemptResult(err), err
}
