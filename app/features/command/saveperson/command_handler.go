package saveperson

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the CommandHandler needs.
type Store interface {
	CreatePerson(ctx context.Context, name, cedula string, roleID int64) (circulation.PersonProfile, error)
	UpdatePerson(ctx context.Context, id int64, name, cedula string, roleID int64) (circulation.PersonProfile, error)
}

// CommandHandler saves persons.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle creates or updates the person and returns it with its role resolved.
//
// A cedula held by another person yields circulation.ErrDuplicateIdentity,
// an unknown role circulation.ErrInvalidReference.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.PersonProfile, shell.HandlerResult, error) {
	if err := core.ValidatePerson(command.Name, command.Cedula); err != nil {
		return circulation.PersonProfile{}, shell.SingleAttemptResult(err), err
	}

	var person circulation.PersonProfile
	var err error

	if command.IsRegistration() {
		person, err = h.store.CreatePerson(ctx, command.Name, command.Cedula, command.RoleID)
	} else {
		person, err = h.store.UpdatePerson(ctx, command.PersonID, command.Name, command.Cedula, command.RoleID)
	}

	return person, shell.SingleAttemptResult(err), err
}
