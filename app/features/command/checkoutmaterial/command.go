package checkoutmaterial

import (
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
)

const (
	commandType = "CheckoutMaterial"
)

// Command represents the intent of a person to borrow one unit of a material.
type Command struct {
	PersonID   int64
	MaterialID int64
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(personID int64, materialID int64, occurredAt time.Time) Command {
	return Command{
		PersonID:   personID,
		MaterialID: materialID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
