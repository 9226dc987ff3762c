package addstock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/command/addstock"
	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := addstock.NewCommandHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 2))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 2, fakeClock)
	GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(time.Minute))

	// act
	change, _, err := handler.Handle(ctx, addstock.BuildCommand(material.ID, 3, fakeClock.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, change.Increment)
	assert.Equal(t, 5, change.RegisteredQuantity)
	assert.Equal(t, 4, change.CurrentQuantity)

	journal, err := store.CirculationJournal(ctx, material.ID)
	require.NoError(t, err)
	require.Len(t, journal, 2)
	assert.Equal(t, core.StockAddedEventType, journal[1].EntryType)
	assert.Nil(t, journal[1].LoanID)

	event, err := shell.DomainEventFrom(journal[1])
	require.NoError(t, err)
	assert.Equal(t, core.BuildStockAdded(material.ID, 3, fakeClock.Add(time.Hour)), event)
}

func Test_CommandHandler_Handle_RejectsNonPositiveAmounts(t *testing.T) {
	// arrange
	handler := addstock.NewCommandHandler(nil) // never reached

	for _, amount := range []int{0, -4} {
		// act
		_, result, err := handler.Handle(context.Background(), addstock.BuildCommand(7, amount, time.Unix(0, 0)))

		// assert
		assert.ErrorIs(t, err, circulation.ErrInvalidArgument)
		assert.Equal(t, "rejected", result.LastErrorType)
	}
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := addstock.NewCommandHandler(wrapper.GetStore())

	// act
	_, _, err := handler.Handle(context.Background(), addstock.BuildCommand(4711, 1, time.Unix(0, 0)))

	// assert
	assert.ErrorIs(t, err, circulation.ErrNotFound)
}
