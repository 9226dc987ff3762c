package checkoutmaterial_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

func givenState(capacity, openLoans, currentQuantity int) circulation.CheckoutState {
	return circulation.CheckoutState{
		PersonFound: true,
		Person: circulation.PersonProfile{
			Person:   circulation.Person{ID: 3, Name: "Ana", Cedula: "0912345678", RoleID: 1, Version: 2},
			RoleName: "Estudiante",
			Capacity: capacity,
		},
		MaterialFound: true,
		Material:      circulation.Material{ID: 7, Title: "Rayuela", RegisteredQuantity: 5, CurrentQuantity: currentQuantity},
		OpenLoans:     openLoans,
	}
}

func Test_Decide(t *testing.T) {
	fakeClock := time.Unix(0, 0).UTC()
	command := checkoutmaterial.BuildCommand(3, 7, fakeClock)

	testCases := []struct {
		description string
		state       circulation.CheckoutState
		expectedErr error
	}{
		{
			description: "person missing",
			state:       circulation.CheckoutState{MaterialFound: true, Material: circulation.Material{CurrentQuantity: 1}},
			expectedErr: circulation.ErrNotFound,
		},
		{
			description: "material missing",
			state:       circulation.CheckoutState{PersonFound: true, Person: circulation.PersonProfile{Capacity: 3}},
			expectedErr: circulation.ErrNotFound,
		},
		{
			description: "no unit available",
			state:       givenState(3, 0, 0),
			expectedErr: circulation.ErrOutOfStock,
		},
		{
			description: "out of stock is reported before a full quota",
			state:       givenState(1, 1, 0),
			expectedErr: circulation.ErrOutOfStock,
		},
		{
			description: "quota reached",
			state:       givenState(2, 2, 4),
			expectedErr: circulation.ErrQuotaExceeded,
		},
		{
			description: "quota already exceeded after the capacity was lowered",
			state:       givenState(1, 3, 4),
			expectedErr: circulation.ErrQuotaExceeded,
		},
		{
			description: "negative capacity allows nothing",
			state:       givenState(-1, 0, 4),
			expectedErr: circulation.ErrQuotaExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			result := checkoutmaterial.Decide(tc.state, command)

			assert.True(t, result.IsRejected())
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}

	t.Run("success records LoanOpened", func(t *testing.T) {
		result := checkoutmaterial.Decide(givenState(2, 1, 1), command)

		assert.False(t, result.IsRejected())
		assert.Equal(t, core.BuildLoanOpened(3, 7, fakeClock), result.Event)
	})
}
