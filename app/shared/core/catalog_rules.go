package core

import (
	"errors"
	"strings"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// ValidateRole checks the fields of a role to create or update.
func ValidateRole(name string, capacity int) error {
	if strings.TrimSpace(name) == "" {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("role name must not be empty"))
	}

	if capacity < 0 {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("role capacity must not be negative"))
	}

	return nil
}

// ValidateMaterialType checks the name of a material type to create or update.
func ValidateMaterialType(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("material type name must not be empty"))
	}

	return nil
}

// ValidatePerson checks the fields of a person to create or update.
func ValidatePerson(name string, cedula string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("person name must not be empty"))
	}

	if strings.TrimSpace(cedula) == "" {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("cedula must not be empty"))
	}

	return nil
}

// ValidateNewMaterial checks the fields of a material to register.
func ValidateNewMaterial(title string, initialQuantity int) error {
	if strings.TrimSpace(title) == "" {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("material title must not be empty"))
	}

	if initialQuantity < 0 {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("initial quantity must not be negative"))
	}

	return nil
}

// AdjustMaterial applies an edit to a stored material.
//
// The current quantity moves by the same net amount as the registered quantity, so the number of
// units out on loan stays unchanged. An edit that would leave fewer registered units than are out
// on loan is refused.
func AdjustMaterial(stored circulation.Material, title string, typeID int64, registeredQuantity int) (circulation.Material, error) {
	if strings.TrimSpace(title) == "" {
		return circulation.Material{}, errors.Join(circulation.ErrInvalidArgument, errors.New("material title must not be empty"))
	}

	if registeredQuantity < 0 {
		return circulation.Material{}, errors.Join(circulation.ErrInvalidArgument, errors.New("registered quantity must not be negative"))
	}

	current := stored.CurrentQuantity + registeredQuantity - stored.RegisteredQuantity
	if current < 0 {
		return circulation.Material{}, errors.Join(
			circulation.ErrInvalidArgument,
			errors.New("registered quantity is below the number of units on loan"),
		)
	}

	changed := stored
	changed.Title = title
	changed.TypeID = typeID
	changed.RegisteredQuantity = registeredQuantity
	changed.CurrentQuantity = current

	return changed, nil
}

// ValidateStockAmount checks the number of units to add to a material.
func ValidateStockAmount(amount int) error {
	if amount <= 0 {
		return errors.Join(circulation.ErrInvalidArgument, errors.New("stock amount must be positive"))
	}

	return nil
}
