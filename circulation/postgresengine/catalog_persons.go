package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	operationListPersons  = "list_persons"
	operationGetPerson    = "get_person"
	operationCreatePerson = "create_person"
	operationUpdatePerson = "update_person"
	operationDeletePerson = "delete_person"
)

// ListPersons returns all persons with their role name and capacity, ordered by id.
// It honors circulation.EventualConsistency on the context.
func (s Store) ListPersons(ctx context.Context) (persons []circulation.PersonProfile, err error) {
	ctx, obs := s.observe(ctx, operationListPersons)
	defer func() { obs.finish(err, len(persons)) }()

	builder := selectPersonProfiles().Order(goqu.I(qualified(aliasPerson, colID)).Asc())

	return query(ctx, &s, s.db, operationListPersons, builder, scanPersonProfile)
}

// GetPerson returns the person with the given id or circulation.ErrNotFound.
func (s Store) GetPerson(ctx context.Context, id int64) (person circulation.PersonProfile, err error) {
	ctx, obs := s.observe(ctx, operationGetPerson, spanAttrPersonID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	return s.getPerson(ctx, s.db, id)
}

func (s *Store) getPerson(ctx context.Context, q adapters.Querier, id int64) (circulation.PersonProfile, error) {
	builder := selectPersonProfiles().Where(goqu.I(qualified(aliasPerson, colID)).Eq(id))

	person, found, err := queryOne(ctx, s, q, operationGetPerson, builder, scanPersonProfile)
	if err != nil {
		return circulation.PersonProfile{}, err
	}

	if !found {
		return circulation.PersonProfile{}, circulation.ErrNotFound
	}

	return person, nil
}

// CreatePerson inserts a person.
//
// A cedula that is already registered yields circulation.ErrDuplicateIdentity,
// a role that does not exist yields circulation.ErrInvalidReference.
func (s Store) CreatePerson(
	ctx context.Context,
	name string,
	cedula string,
	roleID int64,
) (person circulation.PersonProfile, err error) {

	ctx, obs := s.observe(ctx, operationCreatePerson, spanAttrRoleID, fmt.Sprintf("%d", roleID))
	defer func() { obs.finish(err, -1) }()

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		inserted, _, err := queryOne(ctx, &s, tx, operationCreatePerson, dialect().
			Insert(tablePersons).
			Rows(goqu.Record{colName: name, colCedula: cedula, colRoleID: roleID}).
			Returning(colID), scanID)
		if err != nil {
			return translateWriteError(err, circulation.ErrInvalidReference, circulation.ErrDuplicateIdentity, nil)
		}

		person, err = s.getPerson(ctx, tx, inserted)

		return err
	})

	return person, err
}

// UpdatePerson replaces name, cedula and role of a person and returns the updated profile.
// It fails like CreatePerson and with circulation.ErrNotFound.
func (s Store) UpdatePerson(
	ctx context.Context,
	id int64,
	name string,
	cedula string,
	roleID int64,
) (person circulation.PersonProfile, err error) {

	ctx, obs := s.observe(ctx, operationUpdatePerson, spanAttrPersonID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		updated, err := s.exec(ctx, tx, operationUpdatePerson, dialect().
			Update(tablePersons).
			Set(goqu.Record{
				colName:    name,
				colCedula:  cedula,
				colRoleID:  roleID,
				colVersion: goqu.L(exprVersionIncrement),
			}).
			Where(goqu.Ex{colID: id}))
		if err != nil {
			return translateWriteError(err, circulation.ErrInvalidReference, circulation.ErrDuplicateIdentity, nil)
		}

		if updated == 0 {
			return circulation.ErrNotFound
		}

		person, err = s.getPerson(ctx, tx, id)

		return err
	})

	return person, err
}

// DeletePerson removes a person without open loans.
//
// The person's closed loans are kept as history. The open-loan guard and the version-conditional
// delete run in one transaction. A checkout or return for the person in between bumps its version
// and surfaces as circulation.ErrConcurrencyConflict.
func (s Store) DeletePerson(ctx context.Context, id int64) (err error) {
	ctx, obs := s.observe(ctx, operationDeletePerson, spanAttrPersonID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	return s.withinTx(ctx, func(tx adapters.DBTx) error {
		person, err := s.getPerson(ctx, tx, id)
		if err != nil {
			return err
		}

		openLoans, err := s.count(ctx, tx, operationDeletePerson, dialect().
			From(tableLoans).
			Select(goqu.COUNT(goqu.Star())).
			Where(goqu.Ex{colPersonID: id, colReturned: false}))
		if err != nil {
			return err
		}

		if openLoans > 0 {
			return circulation.ErrHasOpenLoans
		}

		deleted, err := s.exec(ctx, tx, operationDeletePerson, dialect().
			Delete(tablePersons).
			Where(goqu.Ex{colID: id, colVersion: person.Version}))
		if err != nil {
			return err
		}

		if deleted == 0 {
			return circulation.ErrConcurrencyConflict
		}

		return nil
	})
}

func scanID(row adapters.DBRows) (int64, error) {
	var id int64
	err := row.Scan(&id)

	return id, err
}
