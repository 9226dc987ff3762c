package removematerialtype_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bibliotecago/library-circulation-go/app/features/command/removematerialtype"
	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_CommandHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := removematerialtype.NewCommandHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	referenced := GivenMaterialType(t, ctx, store)
	GivenMaterial(t, ctx, store, referenced, 1, fakeClock)
	unused := GivenMaterialType(t, ctx, store)

	// act
	_, _, referencedErr := handler.Handle(ctx, removematerialtype.BuildCommand(referenced.ID))
	_, _, removeErr := handler.Handle(ctx, removematerialtype.BuildCommand(unused.ID))
	_, _, notFoundErr := handler.Handle(ctx, removematerialtype.BuildCommand(unused.ID))

	// assert
	assert.ErrorIs(t, referencedErr, circulation.ErrReferencedByMaterial)
	assert.NoError(t, removeErr)
	assert.ErrorIs(t, notFoundErr, circulation.ErrNotFound)
}
