package postgresengine

const (
	dialectPostgres = "postgres"

	tableRoles         = "roles"
	tableMaterialTypes = "material_types"
	tablePersons       = "persons"
	tableMaterials     = "materials"
	tableLoans         = "loans"
	tableJournal       = "circulation_journal"

	aliasRole         = "r"
	aliasMaterialType = "mt"
	aliasPerson       = "p"
	aliasMaterial     = "m"
	aliasLoan         = "l"

	colID                 = "id"
	colName               = "name"
	colCapacity           = "capacity"
	colVersion            = "version"
	colCedula             = "cedula"
	colRoleID             = "role_id"
	colTitle              = "title"
	colTypeID             = "type_id"
	colRegisteredAt       = "registered_at"
	colRegisteredQuantity = "registered_quantity"
	colCurrentQuantity    = "current_quantity"
	colPersonID           = "person_id"
	colMaterialID         = "material_id"
	colLoanedAt           = "loaned_at"
	colReturnedAt         = "returned_at"
	colReturned           = "returned"
	colEntryID            = "entry_id"
	colEntryType          = "entry_type"
	colLoanID             = "loan_id"
	colOccurredAt         = "occurred_at"
	colPayload            = "payload"
	colMetadata           = "metadata"
	colSequenceNumber     = "sequence_number"

	aliasOpenLoans = "open_loans"

	exprVersionIncrement      = "version + 1"
	exprCurrentQuantityDec    = "current_quantity - 1"
	exprCurrentQuantityInc    = "current_quantity + 1"
	exprRegisteredQuantityAdd = "registered_quantity + ?"
	exprCurrentQuantityAdd    = "current_quantity + ?"
	castJsonb                 = "?::jsonb"
	castUUID                  = "?::uuid"
	castText                  = "?::text"
)

// qualified returns "alias"."column" for use in goqu identifiers.
func qualified(alias, column string) string {
	return alias + "." + column
}
