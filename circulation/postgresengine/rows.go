package postgresengine

import (
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

func roleColumns() []any {
	return []any{colID, colName, colCapacity, colVersion}
}

func scanRole(row adapters.DBRows) (circulation.Role, error) {
	var r circulation.Role
	err := row.Scan(&r.ID, &r.Name, &r.Capacity, &r.Version)

	return r, err
}

func materialTypeColumns() []any {
	return []any{colID, colName, colVersion}
}

func scanMaterialType(row adapters.DBRows) (circulation.MaterialType, error) {
	var mt circulation.MaterialType
	err := row.Scan(&mt.ID, &mt.Name, &mt.Version)

	return mt, err
}

// selectPersonProfiles selects persons joined with their role.
func selectPersonProfiles() *goqu.SelectDataset {
	return dialect().
		From(goqu.T(tablePersons).As(aliasPerson)).
		Join(
			goqu.T(tableRoles).As(aliasRole),
			goqu.On(goqu.I(qualified(aliasPerson, colRoleID)).Eq(goqu.I(qualified(aliasRole, colID)))),
		).
		Select(
			goqu.I(qualified(aliasPerson, colID)),
			goqu.I(qualified(aliasPerson, colName)),
			goqu.I(qualified(aliasPerson, colCedula)),
			goqu.I(qualified(aliasPerson, colRoleID)),
			goqu.I(qualified(aliasPerson, colVersion)),
			goqu.I(qualified(aliasRole, colName)),
			goqu.I(qualified(aliasRole, colCapacity)),
		)
}

func scanPersonProfile(row adapters.DBRows) (circulation.PersonProfile, error) {
	var p circulation.PersonProfile
	err := row.Scan(&p.ID, &p.Name, &p.Cedula, &p.RoleID, &p.Version, &p.RoleName, &p.Capacity)

	return p, err
}

// openLoansOfPerson is a correlated subquery counting the open loans of the person aliased as p.
func openLoansOfPerson() *goqu.SelectDataset {
	return dialect().
		From(goqu.T(tableLoans).As(aliasLoan)).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.I(qualified(aliasLoan, colPersonID)).Eq(goqu.I(qualified(aliasPerson, colID))),
			goqu.I(qualified(aliasLoan, colReturned)).IsFalse(),
		)
}

// selectPersonsWithOpenLoans selects person profiles plus their open-loan count in a single statement,
// so the count and the person version come from the same snapshot.
func selectPersonsWithOpenLoans() *goqu.SelectDataset {
	return selectPersonProfiles().SelectAppend(openLoansOfPerson().As(aliasOpenLoans))
}

type personWithOpenLoans struct {
	profile   circulation.PersonProfile
	openLoans int
}

func scanPersonWithOpenLoans(row adapters.DBRows) (personWithOpenLoans, error) {
	var r personWithOpenLoans
	p := &r.profile
	err := row.Scan(&p.ID, &p.Name, &p.Cedula, &p.RoleID, &p.Version, &p.RoleName, &p.Capacity, &r.openLoans)

	return r, err
}

func materialColumns() []any {
	return []any{colID, colTitle, colTypeID, colRegisteredAt, colRegisteredQuantity, colCurrentQuantity, colVersion}
}

func scanMaterial(row adapters.DBRows) (circulation.Material, error) {
	var m circulation.Material
	err := row.Scan(&m.ID, &m.Title, &m.TypeID, &m.RegisteredAt, &m.RegisteredQuantity, &m.CurrentQuantity, &m.Version)
	m.RegisteredAt = m.RegisteredAt.UTC()

	return m, err
}

// selectMaterialSummaries selects materials joined with their type.
func selectMaterialSummaries() *goqu.SelectDataset {
	return dialect().
		From(goqu.T(tableMaterials).As(aliasMaterial)).
		Join(
			goqu.T(tableMaterialTypes).As(aliasMaterialType),
			goqu.On(goqu.I(qualified(aliasMaterial, colTypeID)).Eq(goqu.I(qualified(aliasMaterialType, colID)))),
		).
		Select(
			goqu.I(qualified(aliasMaterial, colID)),
			goqu.I(qualified(aliasMaterial, colTitle)),
			goqu.I(qualified(aliasMaterial, colTypeID)),
			goqu.I(qualified(aliasMaterial, colRegisteredAt)),
			goqu.I(qualified(aliasMaterial, colRegisteredQuantity)),
			goqu.I(qualified(aliasMaterial, colCurrentQuantity)),
			goqu.I(qualified(aliasMaterial, colVersion)),
			goqu.I(qualified(aliasMaterialType, colName)),
		)
}

func scanMaterialSummary(row adapters.DBRows) (circulation.MaterialSummary, error) {
	var m circulation.MaterialSummary
	err := row.Scan(
		&m.ID, &m.Title, &m.TypeID, &m.RegisteredAt, &m.RegisteredQuantity, &m.CurrentQuantity, &m.Version, &m.TypeName,
	)
	m.RegisteredAt = m.RegisteredAt.UTC()

	return m, err
}

func loanColumns() []any {
	return []any{colID, colPersonID, colMaterialID, colLoanedAt, colReturnedAt, colReturned}
}

func scanLoan(row adapters.DBRows) (circulation.Loan, error) {
	var (
		l          circulation.Loan
		returnedAt sql.NullTime
	)

	err := row.Scan(&l.ID, &l.PersonID, &l.MaterialID, &l.LoanedAt, &returnedAt, &l.Returned)

	return withLoanTimes(l, returnedAt), err
}

// selectLoanDetails selects loans with the names of their person and material.
// LEFT JOINs keep closed loans whose person or material was deleted.
func selectLoanDetails() *goqu.SelectDataset {
	return dialect().
		From(goqu.T(tableLoans).As(aliasLoan)).
		LeftJoin(
			goqu.T(tablePersons).As(aliasPerson),
			goqu.On(goqu.I(qualified(aliasLoan, colPersonID)).Eq(goqu.I(qualified(aliasPerson, colID)))),
		).
		LeftJoin(
			goqu.T(tableMaterials).As(aliasMaterial),
			goqu.On(goqu.I(qualified(aliasLoan, colMaterialID)).Eq(goqu.I(qualified(aliasMaterial, colID)))),
		).
		Select(
			goqu.I(qualified(aliasLoan, colID)),
			goqu.I(qualified(aliasLoan, colPersonID)),
			goqu.I(qualified(aliasLoan, colMaterialID)),
			goqu.I(qualified(aliasLoan, colLoanedAt)),
			goqu.I(qualified(aliasLoan, colReturnedAt)),
			goqu.I(qualified(aliasLoan, colReturned)),
			goqu.COALESCE(goqu.I(qualified(aliasPerson, colName)), ""),
			goqu.COALESCE(goqu.I(qualified(aliasPerson, colCedula)), ""),
			goqu.COALESCE(goqu.I(qualified(aliasMaterial, colTitle)), ""),
		)
}

func scanLoanDetails(row adapters.DBRows) (circulation.LoanDetails, error) {
	var (
		d          circulation.LoanDetails
		returnedAt sql.NullTime
	)

	err := row.Scan(
		&d.ID, &d.PersonID, &d.MaterialID, &d.LoanedAt, &returnedAt, &d.Returned,
		&d.PersonName, &d.PersonCedula, &d.MaterialTitle,
	)
	d.Loan = withLoanTimes(d.Loan, returnedAt)

	return d, err
}

func withLoanTimes(l circulation.Loan, returnedAt sql.NullTime) circulation.Loan {
	l.LoanedAt = l.LoanedAt.UTC()

	if returnedAt.Valid {
		t := returnedAt.Time.UTC()
		l.ReturnedAt = &t
	}

	return l
}

// utc normalizes timestamps before they are interpolated into SQL.
func utc(t time.Time) time.Time {
	return t.UTC()
}
