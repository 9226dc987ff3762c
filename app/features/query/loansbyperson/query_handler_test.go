package loansbyperson_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/query/loansbyperson"
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
	handler := loansbyperson.NewQueryHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	role := GivenRole(t, ctx, store, 5)
	person := GivenPerson(t, ctx, store, role)
	someoneElse := GivenPerson(t, ctx, store, role)
	idle := GivenPerson(t, ctx, store, role)
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 5, fakeClock)
	older := GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(time.Minute))
	GivenLoanWasClosed(t, ctx, store, older, fakeClock.Add(time.Hour))
	newer := GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(2*time.Hour))
	GivenLoanWasOpened(t, ctx, store, someoneElse.ID, material.ID, fakeClock.Add(3*time.Hour))

	// act
	result, err := handler.Handle(ctx, loansbyperson.BuildQuery(person.ID))
	empty, emptyErr := handler.Handle(ctx, loansbyperson.BuildQuery(idle.ID))
	_, notFoundErr := handler.Handle(ctx, loansbyperson.BuildQuery(4711))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.Open)
	assert.Equal(t, newer.ID, result.Loans[0].ID)
	assert.Equal(t, older.ID, result.Loans[1].ID)

	require.NoError(t, emptyErr)
	assert.Equal(t, 0, empty.Count)

	assert.ErrorIs(t, notFoundErr, circulation.ErrNotFound)
}
