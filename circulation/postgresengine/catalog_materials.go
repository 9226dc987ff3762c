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
	operationListMaterials  = "list_materials"
	operationGetMaterial    = "get_material"
	operationCreateMaterial = "create_material"
	operationUpdateMaterial = "update_material"
	operationAddStock       = "add_stock"
	operationDeleteMaterial = "delete_material"
)

// ListMaterials returns all materials with their type name, ordered by id.
// It honors circulation.EventualConsistency on the context.
func (s Store) ListMaterials(ctx context.Context) (materials []circulation.MaterialSummary, err error) {
	ctx, obs := s.observe(ctx, operationListMaterials)
	defer func() { obs.finish(err, len(materials)) }()

	builder := selectMaterialSummaries().Order(goqu.I(qualified(aliasMaterial, colID)).Asc())

	return query(ctx, &s, s.db, operationListMaterials, builder, scanMaterialSummary)
}

// GetMaterial returns the material with the given id or circulation.ErrNotFound.
func (s Store) GetMaterial(ctx context.Context, id int64) (material circulation.MaterialSummary, err error) {
	ctx, obs := s.observe(ctx, operationGetMaterial, spanAttrMaterialID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	return s.getMaterialSummary(ctx, s.db, id)
}

func (s *Store) getMaterialSummary(ctx context.Context, q adapters.Querier, id int64) (circulation.MaterialSummary, error) {
	builder := selectMaterialSummaries().Where(goqu.I(qualified(aliasMaterial, colID)).Eq(id))

	material, found, err := queryOne(ctx, s, q, operationGetMaterial, builder, scanMaterialSummary)
	if err != nil {
		return circulation.MaterialSummary{}, err
	}

	if !found {
		return circulation.MaterialSummary{}, circulation.ErrNotFound
	}

	return material, nil
}

// CreateMaterial inserts a material with registered and current quantity both set to initialQuantity.
// A type that does not exist yields circulation.ErrInvalidReference.
func (s Store) CreateMaterial(
	ctx context.Context,
	title string,
	typeID int64,
	initialQuantity int,
	registeredAt time.Time,
) (material circulation.MaterialSummary, err error) {

	ctx, obs := s.observe(ctx, operationCreateMaterial, spanAttrTypeID, fmt.Sprintf("%d", typeID))
	defer func() { obs.finish(err, -1) }()

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		inserted, _, err := queryOne(ctx, &s, tx, operationCreateMaterial, dialect().
			Insert(tableMaterials).
			Rows(goqu.Record{
				colTitle:              title,
				colTypeID:             typeID,
				colRegisteredAt:       utc(registeredAt),
				colRegisteredQuantity: initialQuantity,
				colCurrentQuantity:    initialQuantity,
			}).
			Returning(colID), scanID)
		if err != nil {
			return translateWriteError(err, circulation.ErrInvalidReference, nil, circulation.ErrInvalidArgument)
		}

		material, err = s.getMaterialSummary(ctx, tx, inserted)

		return err
	})

	return material, err
}

// LoadMaterial reads a material from the primary for a decision. found is false when it does not exist.
func (s Store) LoadMaterial(ctx context.Context, id int64) (material circulation.Material, found bool, err error) {
	ctx, obs := s.observe(ctx, operationGetMaterial, spanAttrMaterialID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	builder := dialect().From(tableMaterials).Select(materialColumns()...).Where(goqu.Ex{colID: id})

	return queryOne(circulation.WithStrongConsistency(ctx), &s, s.db, operationGetMaterial, builder, scanMaterial)
}

// UpdateMaterial writes the changed material if the stored one still has the version of current.
//
// The caller decides the new quantities. A version mismatch or a deleted row yields
// circulation.ErrConcurrencyConflict, so the caller reloads and decides again.
func (s Store) UpdateMaterial(
	ctx context.Context,
	current circulation.Material,
	changed circulation.Material,
) (material circulation.MaterialSummary, err error) {

	ctx, obs := s.observe(ctx, operationUpdateMaterial, spanAttrMaterialID, fmt.Sprintf("%d", current.ID))
	defer func() { obs.finish(err, -1) }()

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		updated, err := s.exec(ctx, tx, operationUpdateMaterial, dialect().
			Update(tableMaterials).
			Set(goqu.Record{
				colTitle:              changed.Title,
				colTypeID:             changed.TypeID,
				colRegisteredQuantity: changed.RegisteredQuantity,
				colCurrentQuantity:    changed.CurrentQuantity,
				colVersion:            goqu.L(exprVersionIncrement),
			}).
			Where(goqu.Ex{colID: current.ID, colVersion: current.Version}))
		if err != nil {
			return translateWriteError(err, circulation.ErrInvalidReference, nil, circulation.ErrInvalidArgument)
		}

		if updated == 0 {
			return circulation.ErrConcurrencyConflict
		}

		material, err = s.getMaterialSummary(ctx, tx, current.ID)

		return err
	})

	return material, err
}

// AddStock increments registered and current quantity of a material by amount in one statement
// and appends the given journal entry in the same transaction.
func (s Store) AddStock(
	ctx context.Context,
	id int64,
	amount int,
	entry circulation.JournalEntry,
) (change circulation.StockChange, err error) {

	ctx, obs := s.observe(ctx, operationAddStock, spanAttrMaterialID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1, logAttrMaterialID, id) }()

	if amount <= 0 {
		return circulation.StockChange{}, circulation.ErrInvalidArgument
	}

	err = s.withinTx(ctx, func(tx adapters.DBTx) error {
		material, found, err := queryOne(ctx, &s, tx, operationAddStock, dialect().
			Update(tableMaterials).
			Set(goqu.Record{
				colRegisteredQuantity: goqu.L(exprRegisteredQuantityAdd, amount),
				colCurrentQuantity:    goqu.L(exprCurrentQuantityAdd, amount),
				colVersion:            goqu.L(exprVersionIncrement),
			}).
			Where(goqu.Ex{colID: id}).
			Returning(materialColumns()...), scanMaterial)
		if err != nil {
			return err
		}

		if !found {
			return circulation.ErrNotFound
		}

		if err = s.appendJournalEntry(ctx, tx, entry); err != nil {
			return err
		}

		change = circulation.StockChange{Material: material, Increment: amount}

		return nil
	})

	return change, err
}

// DeleteMaterial removes a material without open loans. Its closed loans are kept as history.
// A checkout or return in between bumps the material version and surfaces as circulation.ErrConcurrencyConflict.
func (s Store) DeleteMaterial(ctx context.Context, id int64) (err error) {
	ctx, obs := s.observe(ctx, operationDeleteMaterial, spanAttrMaterialID, fmt.Sprintf("%d", id))
	defer func() { obs.finish(err, -1) }()

	return s.withinTx(ctx, func(tx adapters.DBTx) error {
		material, err := s.getMaterialSummary(ctx, tx, id)
		if err != nil {
			return err
		}

		openLoans, err := s.count(ctx, tx, operationDeleteMaterial, dialect().
			From(tableLoans).
			Select(goqu.COUNT(goqu.Star())).
			Where(goqu.Ex{colMaterialID: id, colReturned: false}))
		if err != nil {
			return err
		}

		if openLoans > 0 {
			return circulation.ErrHasOpenLoans
		}

		deleted, err := s.exec(ctx, tx, operationDeleteMaterial, dialect().
			Delete(tableMaterials).
			Where(goqu.Ex{colID: id, colVersion: material.Version}))
		if err != nil {
			return err
		}

		if deleted == 0 {
			return circulation.ErrConcurrencyConflict
		}

		return nil
	})
}
