package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	operationListMaterialTypes  = "list_material_types"
	operationGetMaterialType    = "get_material_type"
	operationCreateMaterialType = "create_material_type"
	operationUpdateMaterialType = "update_material_type"
	operationDeleteMaterialType = "delete_material_type"
)

// ListMaterialTypes returns all material types ordered by id.
// It honors circulation.EventualConsistency on the context.
func (s Store) ListMaterialTypes(ctx context.Context) (types []circulation.MaterialType, err error) {
	ctx, obs := s.observe(ctx, operationListMaterialTypes)
	defer func() { obs.finish(err, len(types)) }()

	builder := dialect().From(tableMaterialTypes).Select(materialTypeColumns()...).Order(goqu.I(colID).Asc())

	return query(ctx, &s, s.db, operationListMaterialTypes, builder, scanMaterialType)
}

// GetMaterialType returns the material type with the given id or circulation.ErrNotFound.
func (s Store) GetMaterialType(ctx context.Context, id int64) (mt circulation.MaterialType, err error) {
	ctx, obs := s.observe(ctx, operationGetMaterialType)
	defer func() { obs.finish(err, -1) }()

	return s.getMaterialType(ctx, s.db, id)
}

func (s *Store) getMaterialType(ctx context.Context, q adapters.Querier, id int64) (circulation.MaterialType, error) {
	builder := dialect().From(tableMaterialTypes).Select(materialTypeColumns()...).Where(goqu.Ex{colID: id})

	mt, found, err := queryOne(ctx, s, q, operationGetMaterialType, builder, scanMaterialType)
	if err != nil {
		return circulation.MaterialType{}, err
	}

	if !found {
		return circulation.MaterialType{}, circulation.ErrNotFound
	}

	return mt, nil
}

// CreateMaterialType inserts a material type and returns it with its assigned id.
func (s Store) CreateMaterialType(ctx context.Context, name string) (mt circulation.MaterialType, err error) {
	ctx, obs := s.observe(ctx, operationCreateMaterialType)
	defer func() { obs.finish(err, -1) }()

	builder := dialect().
		Insert(tableMaterialTypes).
		Rows(goqu.Record{colName: name}).
		Returning(materialTypeColumns()...)

	mt, _, err = queryOne(ctx, &s, s.db, operationCreateMaterialType, builder, scanMaterialType)

	return mt, err
}

// UpdateMaterialType renames a material type and returns the updated record.
func (s Store) UpdateMaterialType(ctx context.Context, id int64, name string) (mt circulation.MaterialType, err error) {
	ctx, obs := s.observe(ctx, operationUpdateMaterialType)
	defer func() { obs.finish(err, -1) }()

	builder := dialect().
		Update(tableMaterialTypes).
		Set(goqu.Record{colName: name, colVersion: goqu.L(exprVersionIncrement)}).
		Where(goqu.Ex{colID: id}).
		Returning(materialTypeColumns()...)

	mt, found, err := queryOne(ctx, &s, s.db, operationUpdateMaterialType, builder, scanMaterialType)
	if err != nil {
		return circulation.MaterialType{}, err
	}

	if !found {
		return circulation.MaterialType{}, circulation.ErrNotFound
	}

	return mt, nil
}

// DeleteMaterialType removes a material type that no material references.
// Guard and version-conditional delete run in one transaction.
func (s Store) DeleteMaterialType(ctx context.Context, id int64) (err error) {
	ctx, obs := s.observe(ctx, operationDeleteMaterialType, spanAttrTypeID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	return s.withinTx(ctx, func(tx adapters.DBTx) error {
		mt, err := s.getMaterialType(ctx, tx, id)
		if err != nil {
			return err
		}

		referencing, err := s.count(ctx, tx, operationDeleteMaterialType, dialect().
			From(tableMaterials).
			Select(goqu.COUNT(goqu.Star())).
			Where(goqu.Ex{colTypeID: id}))
		if err != nil {
			return err
		}

		if referencing > 0 {
			return circulation.ErrReferencedByMaterial
		}

		deleted, err := s.exec(ctx, tx, operationDeleteMaterialType, dialect().
			Delete(tableMaterialTypes).
			Where(goqu.Ex{colID: id, colVersion: mt.Version}))
		if err != nil {
			return translateWriteError(err, circulation.ErrReferencedByMaterial, nil, nil)
		}

		if deleted == 0 {
			return circulation.ErrConcurrencyConflict
		}

		return nil
	})
}
