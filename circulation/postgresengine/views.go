package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

const (
	operationActiveLoans   = "active_loans"
	operationLoanHistory   = "loan_history"
	operationLoansByPerson = "loans_by_person"
	operationAvailability  = "availability"
	operationGetLoan       = "get_loan"
)

// The loan views always read from the primary, a replica might not yet show a checkout that just succeeded.

// ActiveLoans returns the open loans, oldest first. Loans with the same timestamp are ordered by id.
func (s Store) ActiveLoans(ctx context.Context) (loans []circulation.LoanDetails, err error) {
	ctx, obs := s.observe(ctx, operationActiveLoans)
	defer func() { obs.finish(err, len(loans)) }()

	builder := selectLoanDetails().
		Where(goqu.I(qualified(aliasLoan, colReturned)).IsFalse()).
		Order(goqu.I(qualified(aliasLoan, colLoanedAt)).Asc(), goqu.I(qualified(aliasLoan, colID)).Asc())

	return query(circulation.WithStrongConsistency(ctx), &s, s.db, operationActiveLoans, builder, scanLoanDetails)
}

// LoanHistory returns all loans, open and returned, newest first.
func (s Store) LoanHistory(ctx context.Context) (loans []circulation.LoanDetails, err error) {
	ctx, obs := s.observe(ctx, operationLoanHistory)
	defer func() { obs.finish(err, len(loans)) }()

	builder := selectLoanDetails().
		Order(goqu.I(qualified(aliasLoan, colLoanedAt)).Desc(), goqu.I(qualified(aliasLoan, colID)).Desc())

	return query(circulation.WithStrongConsistency(ctx), &s, s.db, operationLoanHistory, builder, scanLoanDetails)
}

// LoansByPerson returns all loans of a person, newest first, or circulation.ErrNotFound
// if the person does not exist.
func (s Store) LoansByPerson(ctx context.Context, personID int64) (loans []circulation.LoanDetails, err error) {
	ctx, obs := s.observe(ctx, operationLoansByPerson, spanAttrPersonID, fmt.Sprintf("%d", personID))
	defer func() { obs.finish(err, len(loans)) }()

	ctx = circulation.WithStrongConsistency(ctx)

	if _, err = s.getPerson(ctx, s.db, personID); err != nil {
		return nil, err
	}

	builder := selectLoanDetails().
		Where(goqu.I(qualified(aliasLoan, colPersonID)).Eq(personID)).
		Order(goqu.I(qualified(aliasLoan, colLoanedAt)).Desc(), goqu.I(qualified(aliasLoan, colID)).Desc())

	return query(ctx, &s, s.db, operationLoansByPerson, builder, scanLoanDetails)
}

// Availability reports the role capacity of a person, the number of open loans and the difference.
// The capacity is passed through capacityOf so the caller's quota policy decides the effective value.
func (s Store) Availability(
	ctx context.Context,
	personID int64,
	capacityOf func(role circulation.Role) int,
) (availability circulation.Availability, err error) {

	ctx, obs := s.observe(ctx, operationAvailability, spanAttrPersonID, fmt.Sprintf("%d", personID))
	defer func() { obs.finish(err, -1) }()

	person, found, err := queryOne(circulation.WithStrongConsistency(ctx), &s, s.db, operationAvailability,
		selectPersonsWithOpenLoans().Where(goqu.I(qualified(aliasPerson, colID)).Eq(personID)),
		scanPersonWithOpenLoans,
	)
	if err != nil {
		return circulation.Availability{}, err
	}

	if !found {
		return circulation.Availability{}, circulation.ErrNotFound
	}

	profile := person.profile
	capacity := capacityOf(circulation.Role{ID: profile.RoleID, Name: profile.RoleName, Capacity: profile.Capacity})

	return circulation.Availability{
		PersonID:    profile.ID,
		PersonName:  profile.Name,
		Cedula:      profile.Cedula,
		RoleName:    profile.RoleName,
		Capacity:    capacity,
		ActiveLoans: person.openLoans,
		Available:   capacity - person.openLoans,
	}, nil
}

// GetLoan returns a single loan with its person and material names, or circulation.ErrNotFound.
func (s Store) GetLoan(ctx context.Context, loanID int64) (loan circulation.LoanDetails, err error) {
	ctx, obs := s.observe(ctx, operationGetLoan, spanAttrLoanID, fmt.Sprintf("%d", loanID))
	defer func() { obs.finish(err, -1) }()

	loan, found, err := queryOne(circulation.WithStrongConsistency(ctx), &s, s.db, operationGetLoan,
		selectLoanDetails().Where(goqu.I(qualified(aliasLoan, colID)).Eq(loanID)),
		scanLoanDetails,
	)
	if err != nil {
		return circulation.LoanDetails{}, err
	}

	if !found {
		return circulation.LoanDetails{}, circulation.ErrNotFound
	}

	return loan, nil
}
