package checkoutmaterial

import (
	"errors"
	"fmt"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Decide implements the checkout rules. It is a pure function of the loaded state.
//
// Business Rules:
//
//	GIVEN: a person and a material
//	WHEN: CheckoutMaterial is received
//	THEN: LoanOpened is recorded
//	ERROR: NotFound if the person or the material does not exist
//	ERROR: OutOfStock if the material has no unit available
//	ERROR: QuotaExceeded if the person already holds as many open loans as the role allows
//
// The checks run in this order, so an unavailable material is reported before a full quota.
func Decide(state circulation.CheckoutState, command Command) core.DecisionResult {
	if !state.PersonFound {
		return core.RejectedDecision(errors.Join(circulation.ErrNotFound, fmt.Errorf("person %d", command.PersonID)))
	}

	if !state.MaterialFound {
		return core.RejectedDecision(errors.Join(circulation.ErrNotFound, fmt.Errorf("material %d", command.MaterialID)))
	}

	if state.Material.CurrentQuantity <= 0 {
		return core.RejectedDecision(errors.Join(circulation.ErrOutOfStock, fmt.Errorf("material %d", command.MaterialID)))
	}

	capacity := core.Capacity(circulation.Role{ID: state.Person.RoleID, Name: state.Person.RoleName, Capacity: state.Person.Capacity})
	if state.OpenLoans >= capacity {
		return core.RejectedDecision(errors.Join(
			circulation.ErrQuotaExceeded,
			fmt.Errorf("person %d holds %d of %d loans", command.PersonID, state.OpenLoans, capacity),
		))
	}

	return core.SuccessDecision(core.BuildLoanOpened(command.PersonID, command.MaterialID, command.OccurredAt))
}
