package materialtypes

const (
	listQueryType = "ListMaterialTypes"
	getQueryType  = "GetMaterialType"
)

// ListQuery represents the intent to list all material types.
// With EventualConsistency set the listing may be served by a read replica.
type ListQuery struct {
	EventualConsistency bool
}

func BuildListQuery(eventualConsistency bool) ListQuery {
	return ListQuery{EventualConsistency: eventualConsistency}
}

// QueryType returns the query type.
func (q ListQuery) QueryType() string {
	return listQueryType
}

// GetQuery represents the intent to read a single material type.
type GetQuery struct {
	ID int64
}

func BuildGetQuery(id int64) GetQuery {
	return GetQuery{ID: id}
}

// QueryType returns the query type.
func (q GetQuery) QueryType() string {
	return getQueryType
}
