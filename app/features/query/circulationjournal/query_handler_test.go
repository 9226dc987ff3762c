package circulationjournal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/command/addstock"
	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/returnloan"
	"github.com/bibliotecago/library-circulation-go/app/features/query/circulationjournal"
	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_QueryHandler_Handle_ReplaysTheCirculationOfAMaterial(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := circulationjournal.NewQueryHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 3))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 1, fakeClock)

	loan, _, err := checkoutmaterial.NewCommandHandler(store).
		Handle(ctx, checkoutmaterial.BuildCommand(person.ID, material.ID, fakeClock.Add(time.Minute)))
	require.NoError(t, err)

	_, _, err = returnloan.NewCommandHandler(store).
		Handle(ctx, returnloan.BuildCommand(loan.ID, fakeClock.Add(time.Hour)))
	require.NoError(t, err)

	_, _, err = addstock.NewCommandHandler(store).
		Handle(ctx, addstock.BuildCommand(material.ID, 4, fakeClock.Add(2*time.Hour)))
	require.NoError(t, err)

	// act
	journal, err := handler.Handle(ctx, circulationjournal.BuildQuery(material.ID))

	// assert
	require.NoError(t, err)
	require.Equal(t, 3, journal.Count)
	assert.Equal(t, 4, journal.NetStockChange)

	assert.Equal(t, core.LoanOpenedEventType, journal.Entries[0].EntryType)
	assert.Equal(t, core.LoanClosedEventType, journal.Entries[1].EntryType)
	assert.Equal(t, core.StockAddedEventType, journal.Entries[2].EntryType)

	require.NotNil(t, journal.Entries[0].LoanID)
	assert.Equal(t, loan.ID, *journal.Entries[0].LoanID)
	require.NotNil(t, journal.Entries[1].LoanID)
	assert.Equal(t, loan.ID, *journal.Entries[1].LoanID)
	assert.Nil(t, journal.Entries[2].LoanID)

	closed, ok := journal.Entries[1].Event.(core.LoanClosed)
	require.True(t, ok)
	assert.Equal(t, person.ID, closed.PersonID)
	assert.NotEmpty(t, journal.Entries[1].CorrelationID)
}

func Test_QueryHandler_Handle_UnknownMaterialHasAnEmptyJournal(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := circulationjournal.NewQueryHandler(wrapper.GetStore())

	// act
	journal, err := handler.Handle(ctx, circulationjournal.BuildQuery(4711))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, journal.Count)
	assert.Empty(t, journal.Entries)
}
