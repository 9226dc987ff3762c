package checkoutmaterial_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
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
	handler := checkoutmaterial.NewCommandHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 2))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 1, fakeClock)

	// act
	loan, result, err := handler.Handle(ctx, checkoutmaterial.BuildCommand(person.ID, material.ID, fakeClock.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.Equal(t, person.ID, loan.PersonID)
	assert.Equal(t, material.ID, loan.MaterialID)
	assert.Equal(t, fakeClock.Add(time.Hour), loan.LoanedAt)
	assert.True(t, loan.IsOpen())

	stored, err := store.GetMaterial(ctx, material.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentQuantity)
	assert.Equal(t, 1, stored.RegisteredQuantity)

	journal, err := store.CirculationJournal(ctx, material.ID)
	require.NoError(t, err)
	require.Len(t, journal, 1)
	assert.Equal(t, core.LoanOpenedEventType, journal[0].EntryType)
	require.NotNil(t, journal[0].LoanID)
	assert.Equal(t, loan.ID, *journal[0].LoanID)
}

func Test_CommandHandler_Handle_OutOfStock(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := checkoutmaterial.NewCommandHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 2))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 0, fakeClock)

	// act
	_, _, err := handler.Handle(ctx, checkoutmaterial.BuildCommand(person.ID, material.ID, fakeClock))

	// assert
	assert.ErrorIs(t, err, circulation.ErrOutOfStock)
}

func Test_CommandHandler_Handle_QuotaExceeded(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := checkoutmaterial.NewCommandHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 1))
	mt := GivenMaterialType(t, ctx, store)
	first := GivenMaterial(t, ctx, store, mt, 1, fakeClock)
	second := GivenMaterial(t, ctx, store, mt, 1, fakeClock)
	GivenLoanWasOpened(t, ctx, store, person.ID, first.ID, fakeClock.Add(time.Minute))

	// act
	_, _, err := handler.Handle(ctx, checkoutmaterial.BuildCommand(person.ID, second.ID, fakeClock.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, circulation.ErrQuotaExceeded)

	untouched, err := store.GetMaterial(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, untouched.CurrentQuantity)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := checkoutmaterial.NewCommandHandler(store)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 1, fakeClock)

	// act
	_, _, err := handler.Handle(ctx, checkoutmaterial.BuildCommand(4711, material.ID, fakeClock))

	// assert
	assert.ErrorIs(t, err, circulation.ErrNotFound)
}

func Test_CommandHandler_Handle_ConcurrentCheckouts_NeverOversellStock(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := checkoutmaterial.NewCommandHandler(store, checkoutmaterial.WithRetryOptions(
		shell.WithMaxAttempts(50),
		shell.WithBaseDelay(time.Millisecond),
	))
	fakeClock := time.Unix(0, 0).UTC()

	const borrowers = 12
	const stock = 4

	// arrange
	role := GivenRole(t, ctx, store, 5)
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), stock, fakeClock)

	persons := make([]circulation.PersonProfile, borrowers)
	for i := range persons {
		persons[i] = GivenPerson(t, ctx, store, role)
	}

	// act
	var wg sync.WaitGroup
	errs := make([]error, borrowers)

	for i, person := range persons {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = handler.Handle(ctx, checkoutmaterial.BuildCommand(person.ID, material.ID, fakeClock.Add(time.Hour)))
		}()
	}
	wg.Wait()

	// assert
	succeeded, outOfStock := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, circulation.ErrOutOfStock):
			outOfStock++
		}
	}

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, borrowers-stock, outOfStock)

	stored, err := store.GetMaterial(ctx, material.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentQuantity)

	active, err := store.ActiveLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, active, stock)
}

func Test_CommandHandler_Handle_ConcurrentCheckouts_NeverExceedQuota(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := checkoutmaterial.NewCommandHandler(store, checkoutmaterial.WithRetryOptions(
		shell.WithMaxAttempts(50),
		shell.WithBaseDelay(time.Millisecond),
	))
	fakeClock := time.Unix(0, 0).UTC()

	const materials = 8
	const capacity = 3

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, capacity))
	mt := GivenMaterialType(t, ctx, store)

	materialIDs := make([]int64, materials)
	for i := range materialIDs {
		materialIDs[i] = GivenMaterial(t, ctx, store, mt, 1, fakeClock).ID
	}

	// act
	var wg sync.WaitGroup
	errs := make([]error, materials)

	for i, materialID := range materialIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = handler.Handle(ctx, checkoutmaterial.BuildCommand(person.ID, materialID, fakeClock.Add(time.Hour)))
		}()
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, circulation.ErrQuotaExceeded)
	}

	assert.Equal(t, capacity, succeeded)

	loans, err := store.LoansByPerson(ctx, person.ID)
	require.NoError(t, err)
	assert.Len(t, loans, capacity)
}

func Test_CommandHandler_Handle_RetriesAConflictingWrite(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	store := &conflictingStore{conflicts: 2, state: givenState(3, 0, 2)}
	handler := checkoutmaterial.NewCommandHandler(store, checkoutmaterial.WithRetryOptions(shell.WithBaseDelay(0)))

	// act
	loan, result, err := handler.Handle(context.Background(), checkoutmaterial.BuildCommand(3, 7, fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(99), loan.ID)
	assert.Equal(t, 3, result.RetryAttempts)
	assert.Equal(t, 3, store.loads)
	assert.False(t, result.RetriesExhausted)
}

func Test_CommandHandler_Handle_ReturnsConflictWhenRetriesAreExhausted(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	store := &conflictingStore{conflicts: 100, state: givenState(3, 0, 2)}
	handler := checkoutmaterial.NewCommandHandler(store, checkoutmaterial.WithRetryOptions(
		shell.WithBaseDelay(0),
		shell.WithMaxAttempts(3),
	))

	// act
	_, result, err := handler.Handle(context.Background(), checkoutmaterial.BuildCommand(3, 7, fakeClock))

	// assert
	assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict)
	assert.True(t, result.RetriesExhausted)
	assert.Equal(t, 3, result.RetryAttempts)
}

// conflictingStore fails OpenLoan with a conflict the given number of times.
type conflictingStore struct {
	conflicts int
	loads     int
	state     circulation.CheckoutState
}

func (s *conflictingStore) LoadCheckoutState(context.Context, int64, int64) (circulation.CheckoutState, error) {
	s.loads++
	return s.state, nil
}

func (s *conflictingStore) OpenLoan(
	_ context.Context,
	state circulation.CheckoutState,
	loanedAt time.Time,
	_ circulation.JournalEntry,
) (circulation.Loan, error) {

	if s.conflicts > 0 {
		s.conflicts--
		return circulation.Loan{}, circulation.ErrConcurrencyConflict
	}

	return circulation.Loan{ID: 99, PersonID: state.Person.ID, MaterialID: state.Material.ID, LoanedAt: loanedAt}, nil
}
