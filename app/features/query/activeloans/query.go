package activeloans

const (
	queryType = "ActiveLoans"
)

// Query represents the input for listing the open loans. It has no parameters.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
