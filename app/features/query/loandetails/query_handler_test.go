package loandetails_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/query/loandetails"
	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := loandetails.NewQueryHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 3))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 1, fakeClock)
	loan := GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(time.Minute))

	// act
	details, err := handler.Handle(ctx, loandetails.BuildQuery(loan.ID))
	_, notFoundErr := handler.Handle(ctx, loandetails.BuildQuery(4711))

	// assert
	require.NoError(t, err)
	assert.Equal(t, loan.ID, details.ID)
	assert.True(t, details.IsOpen())
	assert.Nil(t, details.ReturnedAt)
	assert.Equal(t, person.Name, details.PersonName)
	assert.Equal(t, material.Title, details.MaterialTitle)
	assert.Equal(t, fakeClock.Add(time.Minute), details.LoanedAt.UTC())
	assert.ErrorIs(t, notFoundErr, circulation.ErrNotFound)
}
