package materials

const (
	listQueryType = "ListMaterials"
	getQueryType  = "GetMaterial"
)

// ListQuery represents the intent to list all materials.
// With EventualConsistency set the listing may be served by a read replica.
type ListQuery struct {
	EventualConsistency bool
}

// BuildListQuery creates a new ListQuery.
func BuildListQuery(eventualConsistency bool) ListQuery {
	return ListQuery{EventualConsistency: eventualConsistency}
}

// QueryType returns the query type.
func (q ListQuery) QueryType() string {
	return listQueryType
}

// GetQuery represents the intent to read a single material.
type GetQuery struct {
	ID int64
}

// BuildGetQuery creates a new GetQuery with the provided id.
func BuildGetQuery(id int64) GetQuery {
	return GetQuery{ID: id}
}

// QueryType returns the query type.
func (q GetQuery) QueryType() string {
	return getQueryType
}
