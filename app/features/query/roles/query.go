package roles

const (
	listQueryType = "ListRoles"
	getQueryType  = "GetRole"
)

// ListQuery represents the intent to list all roles.
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

// GetQuery represents the intent to read a single role.
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
