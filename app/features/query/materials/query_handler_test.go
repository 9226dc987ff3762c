package materials_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/query/materials"
	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_ListQueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := materials.NewListQueryHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	mt := GivenMaterialType(t, ctx, store)
	first := GivenMaterial(t, ctx, store, mt, 1, fakeClock)
	second := GivenMaterial(t, ctx, store, mt, 2, fakeClock)

	// act
	result, err := handler.Handle(ctx, materials.BuildListQuery(true))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, first.ID, result.Items[0].ID)
	assert.Equal(t, second.ID, result.Items[1].ID)
	assert.Equal(t, mt.Name, result.Items[1].TypeName)
}

func Test_GetQueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := materials.NewGetQueryHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 3, fakeClock)

	// act
	found, err := handler.Handle(ctx, materials.BuildGetQuery(material.ID))
	_, notFoundErr := handler.Handle(ctx, materials.BuildGetQuery(4711))

	// assert
	require.NoError(t, err)
	assert.Equal(t, material, found)
	assert.ErrorIs(t, notFoundErr, circulation.ErrNotFound)
}
