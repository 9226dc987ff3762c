package postgresengine_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
)

func Test_Roles_CRUD(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	created, err := store.CreateRole(ctx, "Estudiante", 3)
	require.NoError(t, err)

	updated, err := store.UpdateRole(ctx, created.ID, "Docente", 5)
	require.NoError(t, err)

	fetched, err := store.GetRole(ctx, created.ID)
	require.NoError(t, err)

	listed, err := store.ListRoles(ctx)
	require.NoError(t, err)

	deleteErr := store.DeleteRole(ctx, created.ID)
	_, getAfterDeleteErr := store.GetRole(ctx, created.ID)

	// assert
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Docente", updated.Name)
	assert.Equal(t, 5, updated.Capacity)
	assert.Greater(t, updated.Version, created.Version)
	assert.Equal(t, updated, fetched)
	assert.Equal(t, []circulation.Role{updated}, listed)
	assert.NoError(t, deleteErr)
	assert.ErrorIs(t, getAfterDeleteErr, circulation.ErrNotFound)
}

func Test_Roles_Missing_Yield_NotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	_, getErr := store.GetRole(ctx, 4711)
	_, updateErr := store.UpdateRole(ctx, 4711, "x", 1)
	deleteErr := store.DeleteRole(ctx, 4711)

	// assert
	assert.ErrorIs(t, getErr, circulation.ErrNotFound)
	assert.ErrorIs(t, updateErr, circulation.ErrNotFound)
	assert.ErrorIs(t, deleteErr, circulation.ErrNotFound)
}

func Test_DeleteRole_Fails_When_ReferencedByPerson(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	role := GivenRole(t, ctx, store, 2)
	GivenPerson(t, ctx, store, role)

	// act
	err := store.DeleteRole(ctx, role.ID)

	// assert
	assert.ErrorIs(t, err, circulation.ErrReferencedByPerson)
	_, getErr := store.GetRole(ctx, role.ID)
	assert.NoError(t, getErr, "role must still exist")
}

func Test_MaterialTypes_CRUD_And_ReferenceGuard(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	unused, err := store.CreateMaterialType(ctx, "Revista")
	require.NoError(t, err)
	used := GivenMaterialType(t, ctx, store)
	GivenMaterial(t, ctx, store, used, 1, fakeClock)

	// act
	renamed, renameErr := store.UpdateMaterialType(ctx, unused.ID, "Periódico")
	listed, listErr := store.ListMaterialTypes(ctx)
	referencedErr := store.DeleteMaterialType(ctx, used.ID)
	deleteErr := store.DeleteMaterialType(ctx, unused.ID)

	// assert
	assert.NoError(t, renameErr)
	assert.Equal(t, "Periódico", renamed.Name)
	assert.NoError(t, listErr)
	assert.Len(t, listed, 2)
	assert.ErrorIs(t, referencedErr, circulation.ErrReferencedByMaterial)
	assert.NoError(t, deleteErr)
}

func Test_CreatePerson_Resolves_Role(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	role := GivenRole(t, ctx, store, 4)
	cedula := GivenUniqueCedula(t)

	// act
	person, err := store.CreatePerson(ctx, "Luis", cedula, role.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Luis", person.Name)
	assert.Equal(t, cedula, person.Cedula)
	assert.Equal(t, role.ID, person.RoleID)
	assert.Equal(t, role.Name, person.RoleName)
	assert.Equal(t, 4, person.Capacity)
}

func Test_CreatePerson_Fails_With_DuplicateIdentity(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	role := GivenRole(t, ctx, store, 1)
	existing := GivenPerson(t, ctx, store, role)

	// act
	_, err := store.CreatePerson(ctx, "Otro", existing.Cedula, role.ID)

	// assert
	assert.ErrorIs(t, err, circulation.ErrDuplicateIdentity)
}

func Test_CreatePerson_Fails_With_InvalidReference(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	_, err := store.CreatePerson(ctx, "Nadie", GivenUniqueCedula(t), 4711)

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvalidReference)
}

func Test_UpdatePerson(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	student := GivenRole(t, ctx, store, 1)
	professor := GivenRole(t, ctx, store, 5)
	person := GivenPerson(t, ctx, store, student)
	other := GivenPerson(t, ctx, store, student)

	// act
	updated, err := store.UpdatePerson(ctx, person.ID, "Ana María", person.Cedula, professor.ID)
	_, duplicateErr := store.UpdatePerson(ctx, person.ID, "Ana María", other.Cedula, professor.ID)
	_, invalidRoleErr := store.UpdatePerson(ctx, person.ID, "Ana María", person.Cedula, 4711)
	_, missingErr := store.UpdatePerson(ctx, 4711, "x", GivenUniqueCedula(t), professor.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, 5, updated.Capacity)
	assert.Greater(t, updated.Version, person.Version)
	assert.ErrorIs(t, duplicateErr, circulation.ErrDuplicateIdentity)
	assert.ErrorIs(t, invalidRoleErr, circulation.ErrInvalidReference)
	assert.ErrorIs(t, missingErr, circulation.ErrNotFound)
}

func Test_DeletePerson_Guards_OpenLoans_And_Keeps_History(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	role := GivenRole(t, ctx, store, 2)
	person := GivenPerson(t, ctx, store, role)
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 2, fakeClock)
	fakeClock = fakeClock.Add(time.Minute)
	loan := GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock)

	// act
	blockedErr := store.DeletePerson(ctx, person.ID)
	fakeClock = fakeClock.Add(time.Minute)
	GivenLoanWasClosed(t, ctx, store, loan, fakeClock)
	deleteErr := store.DeletePerson(ctx, person.ID)
	history, historyErr := store.LoanHistory(ctx)

	// assert
	assert.ErrorIs(t, blockedErr, circulation.ErrHasOpenLoans)
	assert.NoError(t, deleteErr)
	require.NoError(t, historyErr)
	require.Len(t, history, 1)
	assert.Equal(t, loan.ID, history[0].ID)
	assert.Empty(t, history[0].PersonName, "deleted person resolves to an empty name")
	assert.Equal(t, material.Title, history[0].MaterialTitle)
	assert.ErrorIs(t, store.DeletePerson(ctx, person.ID), circulation.ErrNotFound)
}

func Test_CreateMaterial_Sets_Both_Quantities(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(1_700_000_000, 0).UTC()

	// arrange
	mt := GivenMaterialType(t, ctx, store)

	// act
	material, err := store.CreateMaterial(ctx, "Rayuela", mt.ID, 3, fakeClock)
	_, invalidTypeErr := store.CreateMaterial(ctx, "Rayuela", 4711, 3, fakeClock)
	_, negativeErr := store.CreateMaterial(ctx, "Rayuela", mt.ID, -1, fakeClock)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Rayuela", material.Title)
	assert.Equal(t, mt.Name, material.TypeName)
	assert.Equal(t, 3, material.RegisteredQuantity)
	assert.Equal(t, 3, material.CurrentQuantity)
	assert.True(t, fakeClock.Equal(material.RegisteredAt))
	assert.ErrorIs(t, invalidTypeErr, circulation.ErrInvalidReference)
	assert.ErrorIs(t, negativeErr, circulation.ErrInvalidArgument, "the check constraint backs up the caller's validation")
}

func Test_UpdateMaterial_Is_Version_Conditional(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 5, fakeClock)
	loaded, found, err := store.LoadMaterial(ctx, material.ID)
	require.NoError(t, err)
	require.True(t, found)

	changed := loaded
	changed.Title = "Nuevo título"
	changed.RegisteredQuantity = 7
	changed.CurrentQuantity = 7

	// act
	updated, err := store.UpdateMaterial(ctx, loaded, changed)
	_, staleErr := store.UpdateMaterial(ctx, loaded, changed)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Nuevo título", updated.Title)
	assert.Equal(t, 7, updated.RegisteredQuantity)
	assert.Equal(t, 7, updated.CurrentQuantity)
	assert.ErrorIs(t, staleErr, circulation.ErrConcurrencyConflict)
}

func Test_LoadMaterial_Reports_Missing(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	// act
	_, found, err := wrapper.GetStore().LoadMaterial(context.Background(), 4711)

	// assert
	assert.NoError(t, err)
	assert.False(t, found)
}

func Test_AddStock_Increments_Both_Counters_And_Journals(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	role := GivenRole(t, ctx, store, 3)
	person := GivenPerson(t, ctx, store, role)
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 2, fakeClock)
	GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(time.Minute))

	// act
	change, err := store.AddStock(ctx, material.ID, 3, GivenJournalEntry(t, "StockAdded", material.ID, fakeClock.Add(time.Hour)))
	_, missingErr := store.AddStock(ctx, 4711, 3, GivenJournalEntry(t, "StockAdded", 4711, fakeClock))
	_, zeroErr := store.AddStock(ctx, material.ID, 0, GivenJournalEntry(t, "StockAdded", material.ID, fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, change.Increment)
	assert.Equal(t, 5, change.RegisteredQuantity)
	assert.Equal(t, 4, change.CurrentQuantity)
	assert.ErrorIs(t, missingErr, circulation.ErrNotFound)
	assert.ErrorIs(t, zeroErr, circulation.ErrInvalidArgument)

	journal, err := store.CirculationJournal(ctx, material.ID)
	require.NoError(t, err)
	require.Len(t, journal, 2)
	assert.Equal(t, "StockAdded", journal[1].EntryType)
	assert.Nil(t, journal[1].LoanID)
}

func Test_DeleteMaterial_Guards_OpenLoans(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 2))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 1, fakeClock)
	loan := GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(time.Minute))

	// act
	blockedErr := store.DeleteMaterial(ctx, material.ID)
	GivenLoanWasClosed(t, ctx, store, loan, fakeClock.Add(time.Hour))
	deleteErr := store.DeleteMaterial(ctx, material.ID)
	missingErr := store.DeleteMaterial(ctx, material.ID)

	// assert
	assert.ErrorIs(t, blockedErr, circulation.ErrHasOpenLoans)
	assert.NoError(t, deleteErr)
	assert.ErrorIs(t, missingErr, circulation.ErrNotFound)
}

func Test_CatalogListings_Accept_EventualConsistency(t *testing.T) {
	// setup
	ctx := circulation.WithEventualConsistency(context.Background())
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	role := GivenRole(t, ctx, store, 1)
	for i := 0; i < 3; i++ {
		GivenPerson(t, ctx, store, role)
	}

	// act
	persons, err := store.ListPersons(ctx)

	// assert
	require.NoError(t, err)
	assert.Len(t, persons, 3)
	for i, p := range persons {
		assert.Equal(t, role.Name, p.RoleName, fmt.Sprintf("person %d", i))
	}
}
