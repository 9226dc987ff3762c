package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	operationListRoles  = "list_roles"
	operationGetRole    = "get_role"
	operationCreateRole = "create_role"
	operationUpdateRole = "update_role"
	operationDeleteRole = "delete_role"
)

// ListRoles returns all roles ordered by id.
// It honors circulation.EventualConsistency on the context.
func (s Store) ListRoles(ctx context.Context) (roles []circulation.Role, err error) {
	ctx, obs := s.observe(ctx, operationListRoles)
	defer func() { obs.finish(err, len(roles)) }()

	builder := dialect().From(tableRoles).Select(roleColumns()...).Order(goqu.I(colID).Asc())

	return query(ctx, &s, s.db, operationListRoles, builder, scanRole)
}

// GetRole returns the role with the given id or circulation.ErrNotFound.
func (s Store) GetRole(ctx context.Context, id int64) (role circulation.Role, err error) {
	ctx, obs := s.observe(ctx, operationGetRole)
	defer func() { obs.finish(err, -1) }()

	return s.getRole(ctx, s.db, id)
}

func (s *Store) getRole(ctx context.Context, q adapters.Querier, id int64) (circulation.Role, error) {
	builder := dialect().From(tableRoles).Select(roleColumns()...).Where(goqu.Ex{colID: id})

	role, found, err := queryOne(ctx, s, q, operationGetRole, builder, scanRole)
	if err != nil {
		return circulation.Role{}, err
	}

	if !found {
		return circulation.Role{}, circulation.ErrNotFound
	}

	return role, nil
}

// CreateRole inserts a role and returns it with its assigned id.
func (s Store) CreateRole(ctx context.Context, name string, capacity int) (role circulation.Role, err error) {
	ctx, obs := s.observe(ctx, operationCreateRole)
	defer func() { obs.finish(err, -1) }()

	builder := dialect().
		Insert(tableRoles).
		Rows(goqu.Record{colName: name, colCapacity: capacity}).
		Returning(roleColumns()...)

	role, _, err = queryOne(ctx, &s, s.db, operationCreateRole, builder, scanRole)
	if err != nil {
		return circulation.Role{}, translateWriteError(err, nil, nil, circulation.ErrInvalidArgument)
	}

	return role, nil
}

// UpdateRole replaces name and capacity of a role and returns the updated record.
// Lowering the capacity below the open loans of a member is allowed, their availability becomes negative.
func (s Store) UpdateRole(ctx context.Context, id int64, name string, capacity int) (role circulation.Role, err error) {
	ctx, obs := s.observe(ctx, operationUpdateRole)
	defer func() { obs.finish(err, -1) }()

	builder := dialect().
		Update(tableRoles).
		Set(goqu.Record{
			colName:     name,
			colCapacity: capacity,
			colVersion:  goqu.L(exprVersionIncrement),
		}).
		Where(goqu.Ex{colID: id}).
		Returning(roleColumns()...)

	role, found, err := queryOne(ctx, &s, s.db, operationUpdateRole, builder, scanRole)
	if err != nil {
		return circulation.Role{}, translateWriteError(err, nil, nil, circulation.ErrInvalidArgument)
	}

	if !found {
		return circulation.Role{}, circulation.ErrNotFound
	}

	return role, nil
}

// DeleteRole removes a role that no person references.
//
// The reference guard and the version-conditional delete run in one transaction.
// A concurrent change to the role surfaces as circulation.ErrConcurrencyConflict.
func (s Store) DeleteRole(ctx context.Context, id int64) (err error) {
	ctx, obs := s.observe(ctx, operationDeleteRole, spanAttrRoleID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	return s.withinTx(ctx, func(tx adapters.DBTx) error {
		role, err := s.getRole(ctx, tx, id)
		if err != nil {
			return err
		}

		referencing, err := s.count(ctx, tx, operationDeleteRole, dialect().
			From(tablePersons).
			Select(goqu.COUNT(goqu.Star())).
			Where(goqu.Ex{colRoleID: id}))
		if err != nil {
			return err
		}

		if referencing > 0 {
			return circulation.ErrReferencedByPerson
		}

		deleted, err := s.exec(ctx, tx, operationDeleteRole, dialect().
			Delete(tableRoles).
			Where(goqu.Ex{colID: id, colVersion: role.Version}))
		if err != nil {
			return translateWriteError(err, circulation.ErrReferencedByPerson, nil, nil)
		}

		if deleted == 0 {
			return circulation.ErrConcurrencyConflict
		}

		return nil
	})
}
