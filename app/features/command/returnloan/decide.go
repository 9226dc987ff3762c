package returnloan

import (
	"errors"
	"fmt"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Decide implements the return rules.
//
// Business Rules:
//
//	GIVEN: a loan
//	WHEN: ReturnLoan is received
//	THEN: LoanClosed is recorded
//	ERROR: NotFound if the loan does not exist
//	ERROR: AlreadyReturned if the loan was closed before
func Decide(state circulation.ReturnState, command Command) core.DecisionResult {
	if !state.LoanFound {
		return core.RejectedDecision(errors.Join(circulation.ErrNotFound, fmt.Errorf("loan %d", command.LoanID)))
	}

	if !state.Loan.IsOpen() {
		return core.RejectedDecision(errors.Join(circulation.ErrAlreadyReturned, fmt.Errorf("loan %d", command.LoanID)))
	}

	return core.SuccessDecision(core.BuildLoanClosed(
		state.Loan.ID,
		state.Loan.PersonID,
		state.Loan.MaterialID,
		command.OccurredAt,
	))
}
