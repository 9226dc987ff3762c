package addstock

import (
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
)

const (
	commandType = "AddStock"
)

// Command represents the intent to add Amount units of a material to circulation.
type Command struct {
	MaterialID int64
	Amount     int
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(materialID int64, amount int, occurredAt time.Time) Command {
	return Command{
		MaterialID: materialID,
		Amount:     amount,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
