package materialtypes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/query/materialtypes"
	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_QueryHandlers_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	mt := GivenMaterialType(t, ctx, store)

	// act
	all, listErr := materialtypes.NewListQueryHandler(store).Handle(ctx, materialtypes.BuildListQuery(true))
	one, getErr := materialtypes.NewGetQueryHandler(store).Handle(ctx, materialtypes.BuildGetQuery(mt.ID))
	_, notFoundErr := materialtypes.NewGetQueryHandler(store).Handle(ctx, materialtypes.BuildGetQuery(4711))

	// assert
	require.NoError(t, listErr)
	assert.Equal(t, []circulation.MaterialType{mt}, all.Items)
	require.NoError(t, getErr)
	assert.Equal(t, mt, one)
	assert.ErrorIs(t, notFoundErr, circulation.ErrNotFound)
}
