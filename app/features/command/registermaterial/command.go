package registermaterial

import (
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
)

const (
	commandType = "RegisterMaterial"
)

// Command represents the intent to register a material with InitialQuantity units.
type Command struct {
	Title           string
	TypeID          int64
	InitialQuantity int
	OccurredAt      core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(title string, typeID int64, initialQuantity int, occurredAt time.Time) Command {
	return Command{
		Title:           title,
		TypeID:          typeID,
		InitialQuantity: initialQuantity,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}
