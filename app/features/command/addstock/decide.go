package addstock

import (
	"github.com/bibliotecago/library-circulation-go/app/shared/core"
)

// Decide accepts a positive amount and records StockAdded. Whether the material exists is
// checked by the atomic update itself.
func Decide(command Command) core.DecisionResult {
	if err := core.ValidateStockAmount(command.Amount); err != nil {
		return core.RejectedDecision(err)
	}

	return core.SuccessDecision(core.BuildStockAdded(command.MaterialID, command.Amount, command.OccurredAt))
}
