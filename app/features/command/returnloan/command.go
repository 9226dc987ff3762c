package returnloan

import (
	"time"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
)

const (
	commandType = "ReturnLoan"
)

// Command represents the intent to give back the unit of a loan.
type Command struct {
	LoanID     int64
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID int64, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
