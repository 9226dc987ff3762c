package updatematerial

import (
	"errors"
	"fmt"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Decide returns the material as it should be stored after the edit.
//
// Business Rules:
//
//	ERROR: NotFound if the material does not exist
//	ERROR: InvalidArgument if the title is empty or the registered quantity is negative
//	ERROR: InvalidArgument if fewer units would be registered than are out on loan
func Decide(stored circulation.Material, found bool, command Command) (circulation.Material, error) {
	if !found {
		return circulation.Material{}, errors.Join(circulation.ErrNotFound, fmt.Errorf("material %d", command.MaterialID))
	}

	return core.AdjustMaterial(stored, command.Title, command.TypeID, command.RegisteredQuantity)
}
