package returnloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bibliotecago/library-circulation-go/app/features/command/returnloan"
	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

func Test_Decide(t *testing.T) {
	fakeClock := time.Unix(0, 0).UTC()
	returnedAt := fakeClock.Add(time.Hour)
	command := returnloan.BuildCommand(11, fakeClock.Add(2*time.Hour))
	open := circulation.Loan{ID: 11, PersonID: 3, MaterialID: 7, LoanedAt: fakeClock}
	closed := open
	closed.Returned = true
	closed.ReturnedAt = &returnedAt

	t.Run("missing loan", func(t *testing.T) {
		result := returnloan.Decide(circulation.ReturnState{}, command)

		assert.ErrorIs(t, result.HasError(), circulation.ErrNotFound)
	})

	t.Run("already returned loan", func(t *testing.T) {
		result := returnloan.Decide(circulation.ReturnState{LoanFound: true, Loan: closed}, command)

		assert.ErrorIs(t, result.HasError(), circulation.ErrAlreadyReturned)
	})

	t.Run("open loan records LoanClosed", func(t *testing.T) {
		result := returnloan.Decide(circulation.ReturnState{LoanFound: true, Loan: open}, command)

		assert.NoError(t, result.HasError())
		assert.Equal(t, core.BuildLoanClosed(11, 3, 7, fakeClock.Add(2*time.Hour)), result.Event)
	})
}
