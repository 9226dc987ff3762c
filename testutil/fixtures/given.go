package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
)

var cedulaSequence atomic.Int64

// GivenUniqueCedula returns an identity number that no other fixture of this test binary uses.
func GivenUniqueCedula(t testing.TB) string {
	t.Helper()

	return fmt.Sprintf("C-%d-%d", time.Now().UnixNano(), cedulaSequence.Add(1))
}

// GivenRole creates a role with the given capacity.
func GivenRole(t testing.TB, ctx context.Context, store postgresengine.Store, capacity int) circulation.Role {
	t.Helper()

	role, err := store.CreateRole(ctx, fmt.Sprintf("role-%d", capacity), capacity)
	require.NoError(t, err, "error in arranging test data")

	return role
}

// GivenMaterialType creates a material type.
func GivenMaterialType(t testing.TB, ctx context.Context, store postgresengine.Store) circulation.MaterialType {
	t.Helper()

	mt, err := store.CreateMaterialType(ctx, "Book")
	require.NoError(t, err, "error in arranging test data")

	return mt
}

// GivenPerson creates a person with a unique cedula in role.
func GivenPerson(t testing.TB, ctx context.Context, store postgresengine.Store, role circulation.Role) circulation.PersonProfile {
	t.Helper()

	person, err := store.CreatePerson(ctx, "Ana", GivenUniqueCedula(t), role.ID)
	require.NoError(t, err, "error in arranging test data")

	return person
}

// GivenMaterial creates a material of type mt with quantity units.
func GivenMaterial(
	t testing.TB,
	ctx context.Context,
	store postgresengine.Store,
	mt circulation.MaterialType,
	quantity int,
	registeredAt time.Time,
) circulation.MaterialSummary {

	t.Helper()

	material, err := store.CreateMaterial(ctx, "Cien años de soledad", mt.ID, quantity, registeredAt)
	require.NoError(t, err, "error in arranging test data")

	return material
}

// GivenJournalEntry builds a journal entry with an empty payload.
func GivenJournalEntry(t testing.TB, entryType string, materialID int64, occurredAt time.Time) circulation.JournalEntry {
	t.Helper()

	entry, err := circulation.BuildJournalEntryWithEmptyMetadata(uuid.New(), entryType, materialID, occurredAt, []byte("{}"))
	require.NoError(t, err, "error in arranging test data")

	return entry
}

// GivenLoanWasOpened checks out one unit of material for person directly through the store.
func GivenLoanWasOpened(
	t testing.TB,
	ctx context.Context,
	store postgresengine.Store,
	personID int64,
	materialID int64,
	loanedAt time.Time,
) circulation.Loan {

	t.Helper()

	state, err := store.LoadCheckoutState(ctx, personID, materialID)
	require.NoError(t, err, "error in arranging test data")

	loan, err := store.OpenLoan(ctx, state, loanedAt, GivenJournalEntry(t, "LoanOpened", materialID, loanedAt))
	require.NoError(t, err, "error in arranging test data")

	return loan
}

// GivenLoanWasClosed returns a loan directly through the store.
func GivenLoanWasClosed(
	t testing.TB,
	ctx context.Context,
	store postgresengine.Store,
	loan circulation.Loan,
	returnedAt time.Time,
) circulation.Loan {

	t.Helper()

	closed, err := store.CloseLoan(ctx, loan, returnedAt, GivenJournalEntry(t, "LoanClosed", loan.MaterialID, returnedAt))
	require.NoError(t, err, "error in arranging test data")

	return closed
}
