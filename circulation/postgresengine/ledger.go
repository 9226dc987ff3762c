package postgresengine

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	operationLoadCheckoutState = "load_checkout_state"
	operationOpenLoan          = "open_loan"
	operationLoadReturnState   = "load_return_state"
	operationCloseLoan         = "close_loan"
)

// LoadCheckoutState reads everything a checkout decision depends on from the primary.
//
// The person, its role and its open-loan count come from a single statement, so the returned
// person version guards the count: OpenLoan fails with a conflict if any loan of the person
// was opened or closed after this read.
func (s Store) LoadCheckoutState(ctx context.Context, personID, materialID int64) (state circulation.CheckoutState, err error) {
	ctx, obs := s.observe(
		ctx,
		operationLoadCheckoutState,
		spanAttrPersonID, fmt.Sprintf("%d", personID),
		spanAttrMaterialID, fmt.Sprintf("%d", materialID),
	)
	defer func() { obs.finish(err, -1) }()

	ctx = circulation.WithStrongConsistency(ctx)

	person, personFound, err := queryOne(ctx, &s, s.db, operationLoadCheckoutState,
		selectPersonsWithOpenLoans().Where(goqu.I(qualified(aliasPerson, colID)).Eq(personID)),
		scanPersonWithOpenLoans,
	)
	if err != nil {
		return circulation.CheckoutState{}, err
	}

	material, materialFound, err := queryOne(ctx, &s, s.db, operationLoadCheckoutState,
		dialect().From(tableMaterials).Select(materialColumns()...).Where(goqu.Ex{colID: materialID}),
		scanMaterial,
	)
	if err != nil {
		return circulation.CheckoutState{}, err
	}

	return circulation.CheckoutState{
		PersonFound:   personFound,
		Person:        person.profile,
		MaterialFound: materialFound,
		Material:      material,
		OpenLoans:     person.openLoans,
	}, nil
}

// OpenLoan records a checkout decided on state in one transaction:
// it takes one unit of the material if any is left, bumps the person version if it still
// matches state, inserts the loan and appends entry attached to the new loan.
//
// If either conditional update affects no row, nothing is written and circulation.ErrConcurrencyConflict
// is returned. The caller reloads the state and decides again.
func (s Store) OpenLoan(
	ctx context.Context,
	state circulation.CheckoutState,
	loanedAt time.Time,
	entry circulation.JournalEntry,
) (loan circulation.Loan, err error) {

	personID, materialID := state.Person.ID, state.Material.ID

	ctx, obs := s.observe(
		ctx,
		operationOpenLoan,
		spanAttrPersonID, fmt.Sprintf("%d", personID),
		spanAttrMaterialID, fmt.Sprintf("%d", materialID),
	)
	defer func() { obs.finish(err, -1, logAttrPersonID, personID, logAttrMaterialID, materialID) }()

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		taken, err := s.exec(ctx, tx, operationOpenLoan, dialect().
			Update(tableMaterials).
			Set(goqu.Record{
				colCurrentQuantity: goqu.L(exprCurrentQuantityDec),
				colVersion:         goqu.L(exprVersionIncrement),
			}).
			Where(
				goqu.C(colID).Eq(materialID),
				goqu.C(colCurrentQuantity).Gt(0),
			))
		if err != nil {
			return err
		}

		if taken == 0 {
			return circulation.ErrConcurrencyConflict
		}

		claimed, err := s.exec(ctx, tx, operationOpenLoan, dialect().
			Update(tablePersons).
			Set(goqu.Record{colVersion: goqu.L(exprVersionIncrement)}).
			Where(goqu.Ex{colID: personID, colVersion: state.Person.Version}))
		if err != nil {
			return err
		}

		if claimed == 0 {
			return circulation.ErrConcurrencyConflict
		}

		loan, _, err = queryOne(ctx, &s, tx, operationOpenLoan, dialect().
			Insert(tableLoans).
			Rows(goqu.Record{
				colPersonID:   personID,
				colMaterialID: materialID,
				colLoanedAt:   utc(loanedAt),
				colReturned:   false,
			}).
			Returning(loanColumns()...), scanLoan)
		if err != nil {
			return err
		}

		return s.appendJournalEntry(ctx, tx, entry.ForLoan(loan.ID))
	})

	if err != nil {
		return circulation.Loan{}, err
	}

	return loan, nil
}

// LoadReturnState reads the loan a return decision depends on from the primary.
func (s Store) LoadReturnState(ctx context.Context, loanID int64) (state circulation.ReturnState, err error) {
	ctx, obs := s.observe(ctx, operationLoadReturnState, spanAttrLoanID, fmt.Sprintf("%d", loanID))
	defer func() { obs.finish(err, -1) }()

	loan, found, err := queryOne(circulation.WithStrongConsistency(ctx), &s, s.db, operationLoadReturnState,
		dialect().From(tableLoans).Select(loanColumns()...).Where(goqu.Ex{colID: loanID}),
		scanLoan,
	)
	if err != nil {
		return circulation.ReturnState{}, err
	}

	return circulation.ReturnState{LoanFound: found, Loan: loan}, nil
}

// CloseLoan records a return in one transaction: it marks the loan returned if it is still open,
// gives the unit back to the material, bumps the person version and appends entry.
//
// A loan that was returned concurrently yields circulation.ErrConcurrencyConflict.
func (s Store) CloseLoan(
	ctx context.Context,
	open circulation.Loan,
	returnedAt time.Time,
	entry circulation.JournalEntry,
) (loan circulation.Loan, err error) {

	ctx, obs := s.observe(ctx, operationCloseLoan, spanAttrLoanID, fmt.Sprintf("%d", open.ID))
	defer func() { obs.finish(err, -1, logAttrLoanID, open.ID) }()

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		closed, found, err := queryOne(ctx, &s, tx, operationCloseLoan, dialect().
			Update(tableLoans).
			Set(goqu.Record{colReturned: true, colReturnedAt: utc(returnedAt)}).
			Where(goqu.Ex{colID: open.ID, colReturned: false}).
			Returning(loanColumns()...), scanLoan)
		if err != nil {
			return err
		}

		if !found {
			return circulation.ErrConcurrencyConflict
		}

		restocked, err := s.exec(ctx, tx, operationCloseLoan, dialect().
			Update(tableMaterials).
			Set(goqu.Record{
				colCurrentQuantity: goqu.L(exprCurrentQuantityInc),
				colVersion:         goqu.L(exprVersionIncrement),
			}).
			Where(goqu.Ex{colID: closed.MaterialID}))
		if err != nil {
			return err
		}

		// An open loan pins its material, so a missing row means the guards were bypassed.
		if restocked == 0 {
			return circulation.ErrConcurrencyConflict
		}

		if _, err = s.exec(ctx, tx, operationCloseLoan, dialect().
			Update(tablePersons).
			Set(goqu.Record{colVersion: goqu.L(exprVersionIncrement)}).
			Where(goqu.Ex{colID: closed.PersonID})); err != nil {
			return err
		}

		if err = s.appendJournalEntry(ctx, tx, entry.ForLoan(closed.ID)); err != nil {
			return err
		}

		loan = closed

		return nil
	})

	if err != nil {
		return circulation.Loan{}, err
	}

	return loan, nil
}
